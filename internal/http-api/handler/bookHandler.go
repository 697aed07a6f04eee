package handler

import (
	"errors"
	"net/http"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/middleware"
	"emurebook/internal/http-api/repository"
	"emurebook/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// RegisterRoutes mounts the catalog routes. Reads are public, mutations
// require a session.
func (h *BookHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("", h.List)
	router.GET("/search", h.Search)
	router.GET("/categories", h.Categories)
	router.GET("/user/:userId", h.ListByOwner)
	router.GET("/:id", h.Get)

	protected := router.Group("")
	protected.Use(authMW)
	protected.POST("", h.Create)
	protected.PATCH("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)
	protected.POST("/:id/rating", h.Rate)
	protected.POST("/:id/favorite", h.ToggleFavorite)
}

// List returns a filtered, sorted, paginated page of the catalog.
// GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	query := repository.ParseBookQuery(c.Request.URL.Query())

	books, err := h.bookService.List(c.Request.Context(), query)
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(books), gin.H{"books": books})
}

// Search runs a relevance-ranked full-text search.
// GET /api/books/search?q=term
func (h *BookHandler) Search(c *gin.Context) {
	books, err := h.bookService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(books), gin.H{"books": books})
}

// Categories returns the distinct category values in use.
// GET /api/books/categories
func (h *BookHandler) Categories(c *gin.Context) {
	categories, err := h.bookService.Categories(c.Request.Context())
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"categories": categories})
}

// Get returns a single listing.
// GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.bookService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"book": book})
}

// ListByOwner returns every listing owned by the given user.
// GET /api/books/user/:userId
func (h *BookHandler) ListByOwner(c *gin.Context) {
	books, err := h.bookService.GetByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(books), gin.H{"books": books})
}

// Create stores a new listing owned by the caller.
// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), middleware.CallerID(c), req)
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"book": book})
}

// Update applies a partial update; owner or admin only.
// PATCH /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.UpdateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), c.Param("id"), middleware.CallerID(c), middleware.CallerRole(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			respondFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotBookOwner):
			respondFail(c, http.StatusForbidden, err.Error())
		default:
			respondFail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"book": book})
}

// Delete removes a listing; owner or admin only.
// DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	err := h.bookService.Delete(c.Request.Context(), c.Param("id"), middleware.CallerID(c), middleware.CallerRole(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			respondFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotBookOwner):
			respondFail(c, http.StatusForbidden, err.Error())
		default:
			respondFail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Rate upserts the caller's rating for a book and returns the book with its
// refreshed average.
// POST /api/books/:id/rating
func (h *BookHandler) Rate(c *gin.Context) {
	var req dto.RateBookDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.bookService.Rate(c.Request.Context(), c.Param("id"), middleware.CallerID(c), req.Rating, req.Review)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"book": book})
}

// ToggleFavorite flips the book in the caller's favorites and returns the
// updated id list.
// POST /api/books/:id/favorite
func (h *BookHandler) ToggleFavorite(c *gin.Context) {
	favorites, err := h.bookService.ToggleFavorite(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"favoriteBooks": favorites})
}
