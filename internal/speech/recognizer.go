package speech

import "context"

// Recognizer defines the interface for speech-to-text providers. Recognize
// returns the top transcription alternative of each result, in order; an
// empty slice means the provider heard no speech.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) ([]string, error)
}
