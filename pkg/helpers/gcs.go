package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject uploads bytes from r into bucket/objectPath with the provided contentType
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(bucket, objectPath), nil
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// ObjectPathFromURL is the inverse of PublicURL for bucket.
func ObjectPathFromURL(bucket, url string) (string, bool) {
	objectPath, ok := strings.CutPrefix(url, PublicURL(bucket, ""))
	if !ok || objectPath == "" {
		return "", false
	}
	return objectPath, true
}

// DeleteObject removes bucket/objectPath. A missing object is not an error.
func DeleteObject(ctx context.Context, client *storage.Client, bucket, objectPath string) error {
	err := client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// GCSImageStore persists data-URI images under a bucket and hands back their public URL.
type GCSImageStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSImageStore(client *storage.Client, bucket string) *GCSImageStore {
	return &GCSImageStore{Client: client, Bucket: bucket}
}

func (s *GCSImageStore) StoreDataURI(ctx context.Context, folder, dataURI string) (string, error) {
	img, err := ParseDataURI(dataURI)
	if err != nil {
		return "", err
	}
	objectPath := path.Join(folder, uuid.NewString()+img.Ext())
	return UploadObject(ctx, s.Client, s.Bucket, objectPath, img.ContentType, bytes.NewReader(img.Data))
}

// Delete removes an object previously returned by StoreDataURI.
func (s *GCSImageStore) Delete(ctx context.Context, url string) error {
	objectPath, ok := ObjectPathFromURL(s.Bucket, url)
	if !ok {
		return fmt.Errorf("gcs: %q is not an object in bucket %s", url, s.Bucket)
	}
	return DeleteObject(ctx, s.Client, s.Bucket, objectPath)
}
