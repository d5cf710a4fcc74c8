package application

import "context"

// ImageStore uploads a data: URI image and returns its public URL. Delete
// removes an object previously returned by StoreDataURI.
type ImageStore interface {
	StoreDataURI(ctx context.Context, folder, dataURI string) (string, error)
	Delete(ctx context.Context, url string) error
}

// Publisher puts a JSON message on a queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
