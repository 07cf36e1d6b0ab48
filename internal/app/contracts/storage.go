package contracts

import (
	"context"
	"time"
)

// Storage is the blob-storage boundary used for avatar uploads. Upload places
// the object and returns its name; PresignedDownloadURL resolves the name to
// a fetchable URL.
type Storage interface {
	UploadBase64Image(ctx context.Context, encodedImageData []byte, bucketName, fileName, fileExtension string) (string, error)
	PresignedDownloadURL(ctx context.Context, bucketName, fileName string, expiry time.Duration) (string, error)
}
