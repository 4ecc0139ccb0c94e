package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/models"
)

// Sentinel text substituted for a transcript when input is absent or an
// external call fails. Downstream stages treat sentinels as ordinary text.
const (
	NoSpeechDetected     = "No speech detected"
	NoAudioDataProvided  = "No audio data provided"
	ErrorProcessingVoice = "Error processing voice"
	NoVideoDataProvided  = "No video data provided"
	ErrorProcessingVideo = "Error processing video"
)

// transcode normalizes the raw payload into text, branching on input type.
// External calls get a single attempt; failures are logged and absorbed.
func (p *Pipeline) transcode(ctx context.Context, st *state) {
	switch st.inputType {
	case models.InputTypeText:
		st.text = string(st.payload)
		p.log.Info("processed text input", zap.String("text", st.text))

	case models.InputTypeVoice:
		st.text = p.transcribeVoice(ctx, st.payload)

	case models.InputTypeVideo:
		st.text = p.labelVideo(ctx, st.payload)
	}
}

func (p *Pipeline) transcribeVoice(ctx context.Context, audio []byte) string {
	if len(audio) == 0 {
		return NoAudioDataProvided
	}

	transcripts, err := p.recognizer.Recognize(ctx, audio)
	if err != nil {
		p.log.Error("error processing voice", zap.Error(err))
		return ErrorProcessingVoice
	}
	if len(transcripts) == 0 {
		return NoSpeechDetected
	}

	// First result's top alternative only.
	p.log.Info("processed voice input", zap.String("text", transcripts[0]))
	return transcripts[0]
}

func (p *Pipeline) labelVideo(ctx context.Context, image []byte) string {
	if len(image) == 0 {
		return NoVideoDataProvided
	}

	// Single-frame assumption; callers send one image, not a video stream.
	labels, err := p.labeler.Labels(ctx, image)
	if err != nil {
		p.log.Error("error processing video", zap.Error(err))
		return ErrorProcessingVideo
	}

	text := strings.Join(labels, ", ")
	p.log.Info("processed video input", zap.String("text", text))
	return text
}
