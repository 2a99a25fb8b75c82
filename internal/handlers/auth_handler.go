package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skyvoyage/flight-booking-backend/internal/i18n"
	"github.com/skyvoyage/flight-booking-backend/internal/middleware"
	"github.com/skyvoyage/flight-booking-backend/internal/models"
	"github.com/skyvoyage/flight-booking-backend/internal/services"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *services.AuthService
	catalog     *i18n.Catalog
	logger      *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, catalog *i18n.Catalog, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		catalog:     catalog,
		logger:      logger,
	}
}

// Register creates a new account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Account details"
// @Success 201 {object} models.AuthResponse
// @Failure 409 {object} map[string]interface{} "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates an account
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body map[string]string true "refresh_token"
// @Success 200 {object} models.AuthResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated account's profile
// @Summary Current user
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.User
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUser(userCtx.UserID)
	if err != nil {
		respondError(c, h.catalog, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
