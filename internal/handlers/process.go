package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/memory"
	"github.com/ixome/troubleshooter/internal/models"
	"github.com/ixome/troubleshooter/internal/pipeline"
)

// ErrInvalidRequest marks caller errors; transports map it to a client
// error instead of a server failure.
var ErrInvalidRequest = errors.New("invalid request")

// ErrSessionsDisabled is returned from the history endpoints when the
// service runs without a session store.
var ErrSessionsDisabled = errors.New("session history is not enabled")

// ProcessHandler validates incoming requests and runs them through the
// pipeline. When a session manager is present and the caller supplied a
// session ID, the exchange is recorded to the session transcript.
type ProcessHandler struct {
	pipe     *pipeline.Pipeline
	sessions *memory.Manager // optional
	log      *zap.Logger
}

func NewProcessHandler(pipe *pipeline.Pipeline, sessions *memory.Manager, log *zap.Logger) *ProcessHandler {
	return &ProcessHandler{
		pipe:     pipe,
		sessions: sessions,
		log:      log.Named("handler"),
	}
}

func (h *ProcessHandler) Process(ctx context.Context, request *models.ProcessRequest) (*models.ProcessResponse, error) {
	if err := h.validateRequest(request); err != nil {
		return nil, err
	}

	inputType := models.InputType(request.InputType)
	payload := decodePayload(inputType, request.InputData)

	result, err := h.pipe.Process(ctx, inputType, payload)
	if err != nil {
		return nil, err
	}

	h.recordExchange(ctx, request, result)

	return &models.ProcessResponse{Result: result}, nil
}

func (h *ProcessHandler) validateRequest(request *models.ProcessRequest) error {
	if request.InputType == "" {
		return fmt.Errorf("%w: input_type is required", ErrInvalidRequest)
	}
	if !models.InputType(request.InputType).Valid() {
		return fmt.Errorf("%w: unsupported input_type %q", ErrInvalidRequest, request.InputType)
	}
	return nil
}

// decodePayload turns wire input data into pipeline payload bytes. Voice and
// video are expected base64-encoded; data that does not decode is passed
// through as raw bytes.
func decodePayload(inputType models.InputType, data string) []byte {
	if inputType == models.InputTypeText {
		return []byte(data)
	}
	if decoded, err := base64.StdEncoding.DecodeString(data); err == nil {
		return decoded
	}
	return []byte(data)
}

// History returns the formatted conversation for a session.
func (h *ProcessHandler) History(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: session_id is required", ErrInvalidRequest)
	}
	if h.sessions == nil {
		return "", ErrSessionsDisabled
	}
	return h.sessions.History(ctx, sessionID)
}

// ClearSession drops a session transcript.
func (h *ProcessHandler) ClearSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("%w: session_id is required", ErrInvalidRequest)
	}
	if h.sessions == nil {
		return ErrSessionsDisabled
	}
	return h.sessions.ClearSession(ctx, sessionID)
}

// recordExchange writes the query and answer to the session transcript.
// Transcript failures are logged, never surfaced to the caller.
func (h *ProcessHandler) recordExchange(ctx context.Context, request *models.ProcessRequest, result string) {
	if h.sessions == nil || request.SessionID == "" {
		return
	}

	query := request.InputData
	if models.InputType(request.InputType) != models.InputTypeText {
		query = fmt.Sprintf("<%s input>", request.InputType)
	}

	if err := h.sessions.RecordExchange(ctx, request.SessionID, query, result); err != nil {
		h.log.Error("failed to record session exchange",
			zap.String("session_id", request.SessionID),
			zap.Error(err),
		)
	}
}
