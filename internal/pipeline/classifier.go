package pipeline

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/models"
)

// Classification rules, tested in order; the first match wins. Order is
// load-bearing: phrase sets overlap, so "settings error code" must resolve
// to settings_issue, not error_code.
var issueRules = []struct {
	issue   models.Issue
	phrases []string
}{
	{models.IssueNoSound, []string{"no sound", "sound not working", "surround sound", "audio issue"}},
	{models.IssueTVNotTurningOn, []string{"tv not turning on"}},
	{models.IssueSettings, []string{"settings"}},
	{models.IssueErrorCode, []string{"flashing light", "error code"}},
}

// Classify maps normalized text to exactly one issue category. It is total
// and deterministic; text matching no rule is IssueUnknown.
func Classify(text string) models.Issue {
	lowered := strings.ToLower(text)
	for _, rule := range issueRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(lowered, phrase) {
				return rule.issue
			}
		}
	}
	return models.IssueUnknown
}

func (p *Pipeline) classify(st *state) {
	st.issue = Classify(st.text)
	p.log.Info("identified issue",
		zap.String("text", st.text),
		zap.String("issue", string(st.issue)),
	)
}
