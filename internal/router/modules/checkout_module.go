package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ecommerce-backend/internal/interface/http"
)

type CheckoutModule struct {
	Handler *handlers.CheckoutHandler
}

func NewCheckoutModule(h *handlers.CheckoutHandler) *CheckoutModule {
	return &CheckoutModule{Handler: h}
}

func (m *CheckoutModule) Register(rg *gin.RouterGroup) {
	rg.POST("/create-checkout-session", m.Handler.CreateSession)
}
