package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ixome/troubleshooter/internal/models"
)

func runTranscode(p *Pipeline, inputType models.InputType, payload []byte) string {
	st := &state{inputType: inputType, payload: payload}
	p.transcode(context.Background(), st)
	return st.text
}

func TestTranscodeTextPassthrough(t *testing.T) {
	p := newTestPipeline(nil, nil, nil)

	assert.Equal(t, "My TV has no sound.", runTranscode(p, models.InputTypeText, []byte("My TV has no sound.")))
	assert.Equal(t, "", runTranscode(p, models.InputTypeText, nil))
}

func TestTranscodeVoice(t *testing.T) {
	tests := []struct {
		name       string
		recognizer *stubRecognizer
		payload    []byte
		want       string
	}{
		{
			name:       "first result top alternative",
			recognizer: &stubRecognizer{transcripts: []string{"no sound", "extra"}},
			payload:    []byte("pcm"),
			want:       "no sound",
		},
		{
			name:       "no payload",
			recognizer: &stubRecognizer{transcripts: []string{"unused"}},
			payload:    nil,
			want:       NoAudioDataProvided,
		},
		{
			name:       "no results",
			recognizer: &stubRecognizer{},
			payload:    []byte("pcm"),
			want:       NoSpeechDetected,
		},
		{
			name:       "recognizer failure",
			recognizer: &stubRecognizer{err: errors.New("deadline exceeded")},
			payload:    []byte("pcm"),
			want:       ErrorProcessingVoice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(tt.recognizer, nil, nil)
			assert.Equal(t, tt.want, runTranscode(p, models.InputTypeVoice, tt.payload))
		})
	}
}

func TestTranscodeVideo(t *testing.T) {
	tests := []struct {
		name    string
		labeler *stubLabeler
		payload []byte
		want    string
	}{
		{
			name:    "labels joined with comma",
			labeler: &stubLabeler{labels: []string{"television", "remote control"}},
			payload: []byte("jpeg"),
			want:    "television, remote control",
		},
		{
			name:    "no payload",
			labeler: &stubLabeler{labels: []string{"unused"}},
			payload: []byte{},
			want:    NoVideoDataProvided,
		},
		{
			name:    "labeler failure",
			labeler: &stubLabeler{err: errors.New("permission denied")},
			payload: []byte("jpeg"),
			want:    ErrorProcessingVideo,
		},
		{
			name:    "no labels",
			labeler: &stubLabeler{},
			payload: []byte("jpeg"),
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(nil, tt.labeler, nil)
			assert.Equal(t, tt.want, runTranscode(p, models.InputTypeVideo, tt.payload))
		})
	}
}
