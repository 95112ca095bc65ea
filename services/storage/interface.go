package storage

import "context"

// StorageService persists staged blobs to durable storage. The wizard's
// submission assembler depends on it as a black-box blob-to-URI capability.
type StorageService interface {
	// UploadFile uploads the file at localFilePath under destFolder and
	// returns the persisted, publicly reachable URI.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a previously uploaded file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
}
