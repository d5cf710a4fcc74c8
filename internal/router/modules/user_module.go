package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
)

// UserModule wires signup and login.
// POST /signup, POST /login; both limited per IP and route.
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
	Allow   middleware.AllowFunc
	Logger  *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, allow middleware.AllowFunc, logger *logrus.Logger) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, Allow: allow, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, middleware.RateLimitConfig{
		Max: 5, Window: time.Minute, Key: middleware.KeyByIPAndPath(), Allow: m.Allow, Logger: m.Logger,
	})
	loginLimiter := middleware.RateLimit(m.Redis, middleware.RateLimitConfig{
		Max: 10, Window: time.Minute, Key: middleware.KeyByIPAndPath(), Allow: m.Allow, Logger: m.Logger,
	})

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
}
