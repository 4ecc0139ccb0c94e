package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/models"
	"github.com/ixome/troubleshooter/internal/speech"
	"github.com/ixome/troubleshooter/internal/vectorstore"
	"github.com/ixome/troubleshooter/internal/vision"
)

// state is threaded through the stages of a single invocation. Each stage
// writes exactly one field and never clears an upstream one.
type state struct {
	inputType models.InputType
	payload   []byte
	text      string       // set by transcode
	issue     models.Issue // set by classify
	solution  string       // set by resolve
}

// Pipeline runs a support query through transcoding, issue classification,
// solution retrieval, and response generation. All external clients are
// long-lived, injected at startup, and safe for concurrent invocations;
// every invocation owns an independent state.
type Pipeline struct {
	recognizer speech.Recognizer
	labeler    vision.Labeler
	index      vectorstore.SolutionIndex
	embedder   vectorstore.Embedder
	log        *zap.Logger
}

// New wires the pipeline. index may be nil, in which case the resolver runs
// on the static catalog only.
func New(recognizer speech.Recognizer, labeler vision.Labeler, index vectorstore.SolutionIndex, embedder vectorstore.Embedder, log *zap.Logger) *Pipeline {
	return &Pipeline{
		recognizer: recognizer,
		labeler:    labeler,
		index:      index,
		embedder:   embedder,
		log:        log.Named("pipeline"),
	}
}

// Process runs one full traversal: modality branch, classification,
// resolution, response. The only error it returns is an unroutable input
// type; external-service failures surface as sentinel text in the response.
func (p *Pipeline) Process(ctx context.Context, inputType models.InputType, payload []byte) (string, error) {
	if !inputType.Valid() {
		return "", fmt.Errorf("unsupported input type %q", inputType)
	}

	st := &state{inputType: inputType, payload: payload}
	p.log.Info("received input", zap.String("input_type", string(inputType)))

	p.transcode(ctx, st)
	p.classify(st)
	p.resolve(ctx, st)

	// Response generation: the resolved solution, with a final default in
	// case resolution left it unset.
	response := st.solution
	if response == "" {
		response = "No solution found."
	}
	p.log.Info("generated response", zap.String("response", response))

	return response, nil
}
