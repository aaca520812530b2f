// Package blob uploads machine images to S3-compatible object storage and
// removes them again. Uploaded objects are expected to be publicly readable
// through the configured public base URL.
package blob

import (
	"context"
	"errors"
	"io"
)

// ErrUpstream wraps every failure returned by the storage provider.
var ErrUpstream = errors.New("blob storage error")

// Object is a single file handed to Upload.
type Object struct {
	// Name is the client-side file name; only its extension is kept.
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Asset identifies an uploaded object.
type Asset struct {
	URL     string
	AssetID string
}

// Storage is the image hosting contract used by the service layer.
type Storage interface {
	Upload(ctx context.Context, obj Object) (Asset, error)
	Delete(ctx context.Context, assetID string) error
}
