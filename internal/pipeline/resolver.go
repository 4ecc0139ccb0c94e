package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/solutions"
)

// resolve retrieves the solution text. The similarity index is tried first;
// on index failure, index absence, or an empty result set, resolution falls
// back to the static catalog. Index failures are logged and absorbed — this
// is the one external call allowed to fail silently into a fallback.
func (p *Pipeline) resolve(ctx context.Context, st *state) {
	if p.index != nil {
		if solution, ok := p.queryIndex(ctx, st.text); ok {
			st.solution = solution
			return
		}
	}

	st.solution = solutions.Lookup(st.issue)
	p.log.Info("retrieved fallback solution",
		zap.String("issue", string(st.issue)),
		zap.String("solution", st.solution),
	)
}

func (p *Pipeline) queryIndex(ctx context.Context, text string) (string, bool) {
	vector, err := p.embedder.Embed(ctx, text)
	if err != nil {
		p.log.Error("embedding query text failed", zap.Error(err))
		return "", false
	}

	matches, err := p.index.Query(ctx, vector, 1)
	if err != nil {
		p.log.Error("similarity query failed", zap.Error(err))
		return "", false
	}
	if len(matches) == 0 {
		return "", false
	}

	solution, ok := matches[0].Metadata["solution"]
	if !ok {
		solution = "No solution found"
	}
	p.log.Info("retrieved solution from index", zap.String("solution", solution))
	return solution, true
}
