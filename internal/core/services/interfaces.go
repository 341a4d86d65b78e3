package services

import "context"

// FileStorage is the file-storage collaborator used for finance proof and
// report evidence attachments. Uploads are best-effort: a failure is logged
// and the enclosing record still saves without the attachment.
type FileStorage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
