package model

import (
	"context"
	"io"
)

// Photo is an image attached to an item.
type Photo struct {
	Data        []byte
	ContentType string
}

// PhotoKey returns the object key of an item's photo.
func PhotoKey(itemID string) string {
	return "items/" + itemID
}

// PhotoStorage keeps item photos by object key. Deleting a missing key is not an error.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, photo io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
