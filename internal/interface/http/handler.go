package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/interface/middleware"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
	"github.com/oksasatya/go-ecommerce-backend/pkg/validation"
)

const msgInvalidPayload = "Invalid payload"

func badRequest(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, msgInvalidPayload, validation.ToDetails(err))
}

// logFailure records an unexpected error with the request id; the client only
// ever sees the generic message.
func logFailure(logger *logrus.Logger, c *gin.Context, msg string, err error) {
	helpers.LogError(logger, msg, err, logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"path":       c.FullPath(),
	})
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "Server is running")
}
