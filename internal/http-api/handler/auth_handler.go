package handler

import (
	"errors"
	"net/http"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/middleware"
	"emurebook/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers authentication routes; authMW protects the
// session-bound half of the group.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/forgot-password", h.ForgotPassword)
	router.POST("/reset-password/:token", h.ResetPassword)

	protected := router.Group("")
	protected.Use(authMW)
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.GetMe)
	protected.PATCH("/update-password", h.UpdatePassword)
	protected.PATCH("/update-me", h.UpdateMe)
}

// Register creates an account and signs the caller in.
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.Register(req)
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

// Login exchanges credentials for a token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, "please provide email and password")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondFail(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

// Logout is client-side only; tokens stay valid until expiry.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// GetMe returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

// UpdatePassword verifies the current password and issues a fresh token.
// PATCH /api/auth/update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authService.UpdatePassword(middleware.CallerID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			respondFail(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

// UpdateMe applies a partial profile update.
// PATCH /api/auth/update-me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(middleware.CallerID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrPasswordRoute) {
			respondFail(c, http.StatusBadRequest, "this route is not for password updates, please use /update-password")
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

// ForgotPassword acknowledges a reset request for a known address.
// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailUnknown) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token sent to email!",
	})
}

// ResetPassword is a documented stub; it always fails.
// POST /api/auth/reset-password/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authService.ResetPassword(c.Param("token"), req.Password)
	respondFail(c, http.StatusBadRequest, err.Error())
}
