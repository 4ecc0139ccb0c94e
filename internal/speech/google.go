package speech

import (
	"context"
	"fmt"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// GoogleRecognizer implements Recognizer using Google Cloud Speech-to-Text.
// Audio is assumed to be linear PCM (LINEAR16).
type GoogleRecognizer struct {
	client   *gspeech.Client
	language string
}

func NewGoogleRecognizer(ctx context.Context, credentialsFile, language string) (*GoogleRecognizer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gspeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &GoogleRecognizer{
		client:   client,
		language: language,
	}, nil
}

func (g *GoogleRecognizer) Recognize(ctx context.Context, audio []byte) ([]string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:     speechpb.RecognitionConfig_LINEAR16,
			LanguageCode: g.language,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recognize request failed: %w", err)
	}

	var transcripts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		transcripts = append(transcripts, result.Alternatives[0].Transcript)
	}

	return transcripts, nil
}

func (g *GoogleRecognizer) Close() error {
	return g.client.Close()
}
