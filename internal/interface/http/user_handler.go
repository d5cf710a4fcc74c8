package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-ecommerce-backend/internal/application"
	"github.com/oksasatya/go-ecommerce-backend/pkg/response"
)

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Image           string `json:"image"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	_, err := h.Svc.Signup(c.Request.Context(), userapp.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Image:     req.Image,
	})
	switch {
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Alert(c, http.StatusOK, "Email ID is already registered", false)
	case err != nil:
		logFailure(h.Logger, c, "signup failed", err)
		response.Alert(c, http.StatusInternalServerError, "Error signing up", false)
	default:
		response.Alert(c, http.StatusOK, "Successfully signed up", true)
	}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Alert(c, http.StatusOK, "Email is not available, please sign up", false)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Alert(c, http.StatusOK, "Invalid email or password", false)
	case err != nil:
		logFailure(h.Logger, c, "login failed", err)
		response.Alert(c, http.StatusInternalServerError, "Error logging in", false)
	default:
		response.Success(c, http.StatusOK, *res, "Login successfully")
	}
}
