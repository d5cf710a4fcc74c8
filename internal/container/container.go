package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/config"
	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
)

// Container holds the components built in main and handed to the router.
// Optional backends stay nil when they are not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users    repository.UserRepository
	Products repository.ProductRepository

	Redis    *redis.Client
	ES       *elasticsearch.Client
	Images   application.ImageStore
	Mail     application.Publisher
	Sessions application.SessionCreator
}

// Services are the application services built from a Container.
type Services struct {
	Users    *application.UserService
	Products *application.ProductService
	Checkout *application.CheckoutService
}

func (c *Container) Services() Services {
	cfg := c.Config
	return Services{
		Users: application.NewUserService(c.Users, c.Images, c.Mail, c.Logger, cfg.AppName, cfg.FrontendURL),
		Products: application.NewProductService(
			c.Products,
			c.Images,
			c.Redis,
			cfg.ProductCacheTTL,
			c.ES,
			cfg.ESProductsIndex,
			c.Logger,
		),
		Checkout: application.NewCheckoutService(c.Sessions, application.CheckoutOptions{
			Currency:     cfg.StripeCurrency,
			ShippingRate: cfg.StripeShippingRate,
			SuccessURL:   cfg.SuccessURL(),
			CancelURL:    cfg.CancelURL(),
		}, c.Logger),
	}
}
