package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type uploadProductRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Category    string   `json:"category" binding:"required,max=100"`
	Image       string   `json:"image"`
	Price       *float64 `json:"price" binding:"required,money"`
	Description string   `json:"description"`
}

func (h *ProductHandler) Upload(c *gin.Context) {
	var req uploadProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	_, err := h.Svc.Upload(c.Request.Context(), application.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Image:       req.Image,
		Price:       *req.Price,
		Description: req.Description,
	})
	if err != nil {
		logFailure(h.Logger, c, "upload product failed", err)
		response.Message(c, http.StatusInternalServerError, "Error uploading product")
		return
	}
	response.Message(c, http.StatusOK, "Uploaded successfully")
}

// List answers with the bare product array.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		logFailure(h.Logger, c, "list products failed", err)
		response.Message(c, http.StatusInternalServerError, "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, products)
}
