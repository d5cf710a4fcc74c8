package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
	"github.com/oksasatya/go-ecommerce-backend/pkg/validation"
)

type CheckoutHandler struct {
	Svc    *application.CheckoutService
	Logger *logrus.Logger
}

func NewCheckoutHandler(svc *application.CheckoutService, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc, Logger: logger}
}

type lineItemRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required,money"`
	Qty   int64    `json:"qty" binding:"required,min=1"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
}

func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req []lineItemRequest
	if err := validation.BindSlice(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	items := make([]entity.LineItem, 0, len(req))
	for _, r := range req {
		items = append(items, entity.LineItem{Name: r.Name, Price: *r.Price, Qty: r.Qty})
	}

	id, err := h.Svc.CreateSession(c.Request.Context(), items)
	switch {
	case errors.Is(err, application.ErrEmptyCart):
		response.Error(c, http.StatusBadRequest, "Cart is empty", nil)
	case errors.Is(err, application.ErrInvalidPrice):
		response.Error(c, http.StatusBadRequest, msgInvalidPayload, map[string]string{"price": "must be at most " + validation.MaxPrice})
	case err != nil:
		logFailure(h.Logger, c, "create checkout session failed", err)
		response.Message(c, http.StatusInternalServerError, "Failed to create checkout session")
	default:
		c.JSON(http.StatusOK, checkoutResponse{SessionID: id})
	}
}
