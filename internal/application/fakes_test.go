package application

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]entity.User{}} }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[u.Email]; ok {
		return repo.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	r.users[u.Email] = *u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []entity.Product
	err      error
	lists    int
	// afterRead runs once, after List has taken its snapshot.
	afterRead func()
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	p.ID = primitive.NewObjectID()
	r.products = append(r.products, *p)
	return nil
}

func (r *fakeProductRepo) List(context.Context) ([]entity.Product, error) {
	r.mu.Lock()
	r.lists++
	if r.err != nil {
		r.mu.Unlock()
		return nil, r.err
	}
	snapshot := append([]entity.Product{}, r.products...)
	hook := r.afterRead
	r.afterRead = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return snapshot, nil
}

type fakeImages struct {
	url       string
	err       error
	deleteErr error
	folders   []string
	deleted   []string
}

func (f *fakeImages) StoreDataURI(_ context.Context, folder, _ string) (string, error) {
	f.folders = append(f.folders, folder)
	return f.url, f.err
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}

type fakePublisher struct {
	bodies []any
	err    error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.bodies = append(f.bodies, body)
	return f.err
}
