package s3

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"billscan/internal/domain"
	"billscan/internal/port"
)

// presignExpirySecs is the lifetime of archived document links.
const presignExpirySecs = 15 * 60

// Archive stores uploaded bill PDFs under <prefix>/<category>/<record-id>.pdf.
// A nil *Archive is valid and archives nothing.
type Archive struct {
	store  port.ObjectStorage
	bucket string
	prefix string
}

// NewArchive returns nil when bucket is empty.
func NewArchive(store port.ObjectStorage, bucket, prefix string) *Archive {
	if store == nil || bucket == "" {
		return nil
	}
	return &Archive{store: store, bucket: bucket, prefix: prefix}
}

// Key returns the object key of the document behind a record.
func (a *Archive) Key(category domain.BillCategory, id uuid.UUID) string {
	return path.Join(a.prefix, string(category), id.String()+".pdf")
}

// Put uploads body as the source document of record id.
func (a *Archive) Put(ctx context.Context, category domain.BillCategory, id uuid.UUID, body io.Reader, size int64) (string, error) {
	if a == nil {
		return "", nil
	}
	key := a.Key(category, id)
	_, err := a.store.Upload(ctx, port.UploadInput{
		Bucket:      a.bucket,
		Key:         key,
		Body:        body,
		ContentType: domain.AllowedFileTypes[domain.FileTypePDF],
		Size:        size,
	})
	if err != nil {
		return "", fmt.Errorf("archive.Put: %w", err)
	}
	return key, nil
}

// URL returns a time-limited download link for the document of record id,
// or "" when archiving is disabled.
func (a *Archive) URL(ctx context.Context, category domain.BillCategory, id uuid.UUID) (string, error) {
	if a == nil {
		return "", nil
	}
	return a.store.GetPresignedURL(ctx, a.bucket, a.Key(category, id), presignExpirySecs)
}
