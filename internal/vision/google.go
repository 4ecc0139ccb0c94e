package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

const maxLabels = 10

// GoogleLabeler implements Labeler using Google Cloud Vision label detection.
type GoogleLabeler struct {
	client *gvision.ImageAnnotatorClient
}

func NewGoogleLabeler(ctx context.Context, credentialsFile string) (*GoogleLabeler, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gvision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	return &GoogleLabeler{client: client}, nil
}

func (g *GoogleLabeler) Labels(ctx context.Context, image []byte) ([]string, error) {
	annotations, err := g.client.DetectLabels(ctx, &visionpb.Image{Content: image}, nil, maxLabels)
	if err != nil {
		return nil, fmt.Errorf("label detection failed: %w", err)
	}

	labels := make([]string, 0, len(annotations))
	for _, annotation := range annotations {
		labels = append(labels, annotation.Description)
	}

	return labels, nil
}

func (g *GoogleLabeler) Close() error {
	return g.client.Close()
}
