package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
)

type DebugModule struct {
	Redis *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{Redis: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar counters, rate-limited per IP
	rl := middleware.RateLimit(m.Redis, middleware.RateLimitConfig{Max: 120, Window: time.Minute, Key: middleware.KeyByIP()})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
