package handler

import (
	"errors"
	"net/http"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/middleware"
	"emurebook/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes mounts the user directory. Profiles are public, favorites
// and avatar updates are session-bound, the listing and deletion are
// admin-only.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/:id", h.Get)

	protected := router.Group("")
	protected.Use(authMW)
	protected.GET("/favorites/books", h.FavoriteBooks)
	protected.POST("/upload-avatar", h.UploadAvatar)

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.GET("", h.List)
	admin.DELETE("/:id", h.Delete)
}

// Get returns a user's public profile.
// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}

// List returns every registered user; admin only.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(users), gin.H{"users": users})
}

// Delete removes a user account; admin only. Their books and messages are
// left untouched.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.userService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// FavoriteBooks resolves the caller's favorites to full book records.
// GET /api/users/favorites/books
func (h *UserHandler) FavoriteBooks(c *gin.Context) {
	books, err := h.userService.FavoriteBooks(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(books), gin.H{"books": books})
}

// UploadAvatar stores a new avatar URL for the caller.
// POST /api/users/upload-avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	var req dto.UploadAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.UpdateAvatar(c.Request.Context(), middleware.CallerID(c), req.AvatarURL)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"user": user})
}
