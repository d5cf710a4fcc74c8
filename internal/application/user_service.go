package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/go-ecommerce-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ecommerce-backend/pkg/mailer/templates"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService struct {
	Repo        repo.UserRepository
	Images      ImageStore
	Mail        Publisher
	Logger      *logrus.Logger
	AppName     string
	FrontendURL string
}

func NewUserService(r repo.UserRepository, images ImageStore, mail Publisher, logger *logrus.Logger, appName, frontendURL string) *UserService {
	return &UserService{
		Repo:        r,
		Images:      images,
		Mail:        mail,
		Logger:      logger,
		AppName:     appName,
		FrontendURL: frontendURL,
	}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Image     string
}

// LoginResponse is the public projection of a user; it never carries the password.
type LoginResponse struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Image     string `json:"image"`
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Signup stores a new user. Uniqueness is left to the email index, so two
// concurrent signups with one address cannot both succeed.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	image, uploaded := storeImage(ctx, s.Images, s.Logger, "users", in.Image)
	u := &entity.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     normalizeEmail(in.Email),
		Password:  hash,
		Image:     image,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if uploaded {
			discardImage(ctx, s.Images, s.Logger, image)
		}
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	signupsTotal.Add(1)

	s.queueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	loginsTotal.Add(1)

	return &LoginResponse{
		ID:        u.ID.Hex(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Image:     u.Image,
	}, nil
}

// storeImage uploads data: URIs when an image store is configured. Anything
// else (plain URLs, or no store) is kept as sent. uploaded reports whether an
// object now exists that the caller owns.
func storeImage(ctx context.Context, images ImageStore, logger *logrus.Logger, folder, image string) (stored string, uploaded bool) {
	if images == nil || !helpers.IsDataURI(image) {
		return image, false
	}
	url, err := images.StoreDataURI(ctx, folder, image)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("folder", folder).Warn("image upload failed, keeping inline image")
		}
		return image, false
	}
	return url, true
}

// discardImage removes an uploaded object whose record was never stored.
// It outlives a cancelled request so the object is not orphaned.
func discardImage(ctx context.Context, images ImageStore, logger *logrus.Logger, url string) {
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := images.Delete(c, url); err != nil && logger != nil {
		logger.WithError(err).WithField("url", url).Warn("orphaned image cleanup failed")
	}
}

func (s *UserService) queueWelcome(ctx context.Context, u *entity.User) {
	if s.Mail == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data: mailtpl.NewWelcomeData(s.AppName, u.FirstName, u.Email,
			mailtpl.WithFrontendURL(s.FrontendURL),
		),
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("queue welcome email failed")
	}
}
