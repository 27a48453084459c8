// Package poster publishes rendered schedule images. The renderer hands
// over opaque bytes plus a filename, MIME type and caption; adapters decide
// where they go.
package poster

import "context"

// PostResult identifies the published message for the post log.
type PostResult struct {
	MessageID int
	ChatID    int64
}

type Poster interface {
	PostImage(ctx context.Context, image []byte, filename, mimeType, caption string) (PostResult, error)
}
