package vision

import "context"

// Labeler defines the interface for image-labeling providers. Labels returns
// the label descriptions detected in a single image frame, best match first.
type Labeler interface {
	Labels(ctx context.Context, image []byte) ([]string, error)
}
