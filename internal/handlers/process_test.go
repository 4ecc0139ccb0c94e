package handlers

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/memory"
	"github.com/ixome/troubleshooter/internal/models"
	"github.com/ixome/troubleshooter/internal/pipeline"
	"github.com/ixome/troubleshooter/internal/vectorstore"
)

type stubRecognizer struct {
	transcripts []string
	gotAudio    []byte
}

func (s *stubRecognizer) Recognize(_ context.Context, audio []byte) ([]string, error) {
	s.gotAudio = audio
	return s.transcripts, nil
}

type stubLabeler struct{}

func (stubLabeler) Labels(_ context.Context, _ []byte) ([]string, error) {
	return []string{"television"}, nil
}

func newTestHandler(recognizer *stubRecognizer) *ProcessHandler {
	if recognizer == nil {
		recognizer = &stubRecognizer{}
	}
	pipe := pipeline.New(recognizer, stubLabeler{}, nil, vectorstore.NewPlaceholderEmbedder(8), zap.NewNop())
	return NewProcessHandler(pipe, nil, zap.NewNop())
}

func TestProcessTextRequest(t *testing.T) {
	h := newTestHandler(nil)

	resp, err := h.Process(context.Background(), &models.ProcessRequest{
		InputType: "text",
		InputData: "My TV has no sound.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Please check if the sound system is turned on and cables are connected.", resp.Result)
	assert.Empty(t, resp.Error)
}

func TestProcessRejectsMissingInputType(t *testing.T) {
	h := newTestHandler(nil)

	_, err := h.Process(context.Background(), &models.ProcessRequest{InputData: "hello"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestProcessRejectsUnknownInputType(t *testing.T) {
	h := newTestHandler(nil)

	_, err := h.Process(context.Background(), &models.ProcessRequest{
		InputType: "telepathy",
		InputData: "hello",
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestProcessDecodesBase64VoicePayload(t *testing.T) {
	rec := &stubRecognizer{transcripts: []string{"tv not turning on"}}
	h := newTestHandler(rec)

	audio := []byte{0x52, 0x49, 0x46, 0x46}
	resp, err := h.Process(context.Background(), &models.ProcessRequest{
		InputType: "voice",
		InputData: base64.StdEncoding.EncodeToString(audio),
	})
	require.NoError(t, err)
	assert.Equal(t, audio, rec.gotAudio)
	assert.Equal(t, "Please check the power cable and ensure the TV is plugged in.", resp.Result)
}

func TestProcessEmptyVoicePayload(t *testing.T) {
	rec := &stubRecognizer{transcripts: []string{"unused"}}
	h := newTestHandler(rec)

	resp, err := h.Process(context.Background(), &models.ProcessRequest{
		InputType: "voice",
		InputData: "",
	})
	require.NoError(t, err)
	assert.Nil(t, rec.gotAudio)
	assert.Equal(t, "Issue not recognized. Please provide more details.", resp.Result)
}

type mapStore struct {
	transcripts map[string][]memory.Message
}

func newMapStore() *mapStore {
	return &mapStore{transcripts: make(map[string][]memory.Message)}
}

func (s *mapStore) LoadTranscript(_ context.Context, sessionID string) (*memory.Transcript, error) {
	return &memory.Transcript{SessionID: sessionID, Messages: s.transcripts[sessionID]}, nil
}

func (s *mapStore) AppendMessage(_ context.Context, sessionID string, msg memory.Message) error {
	s.transcripts[sessionID] = append(s.transcripts[sessionID], msg)
	return nil
}

func (s *mapStore) ClearTranscript(_ context.Context, sessionID string) error {
	delete(s.transcripts, sessionID)
	return nil
}

func newSessionHandler(store memory.Store) *ProcessHandler {
	pipe := pipeline.New(&stubRecognizer{}, stubLabeler{}, nil, vectorstore.NewPlaceholderEmbedder(8), zap.NewNop())
	return NewProcessHandler(pipe, memory.NewManager(store), zap.NewNop())
}

func TestHistoryReturnsRecordedExchanges(t *testing.T) {
	h := newSessionHandler(newMapStore())
	ctx := context.Background()

	_, err := h.Process(ctx, &models.ProcessRequest{
		SessionID: "sess-1",
		InputType: "text",
		InputData: "My TV has no sound.",
	})
	require.NoError(t, err)

	history, err := h.History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Contains(t, history, "User: My TV has no sound.")
	assert.Contains(t, history, "Assistant: Please check if the sound system is turned on and cables are connected.")
}

func TestClearSessionEmptiesHistory(t *testing.T) {
	store := newMapStore()
	h := newSessionHandler(store)
	ctx := context.Background()

	_, err := h.Process(ctx, &models.ProcessRequest{
		SessionID: "sess-2",
		InputType: "text",
		InputData: "settings are wrong",
	})
	require.NoError(t, err)

	require.NoError(t, h.ClearSession(ctx, "sess-2"))
	assert.Empty(t, store.transcripts["sess-2"])

	history, err := h.History(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, "No previous conversation.", history)
}

func TestHistoryWithoutSessionStore(t *testing.T) {
	h := newTestHandler(nil)

	_, err := h.History(context.Background(), "sess-3")
	assert.ErrorIs(t, err, ErrSessionsDisabled)

	err = h.ClearSession(context.Background(), "sess-3")
	assert.ErrorIs(t, err, ErrSessionsDisabled)
}

func TestHistoryRequiresSessionID(t *testing.T) {
	h := newSessionHandler(newMapStore())

	_, err := h.History(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
