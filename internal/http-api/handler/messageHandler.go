package handler

import (
	"errors"
	"net/http"

	"emurebook/internal/http-api/dto"
	"emurebook/internal/http-api/middleware"
	"emurebook/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterRoutes mounts the messaging routes; every one of them requires a
// session.
func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.Use(authMW)
	router.POST("", h.Send)
	router.GET("", h.ListMine)
	router.GET("/conversations", h.Conversations)
	router.GET("/conversation/:userId", h.ConversationWith)
	router.PATCH("/:id/read", h.MarkRead)
	router.DELETE("/:id", h.Delete)
}

// Send delivers a message from the caller to another user.
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), middleware.CallerID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrReceiverNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"message": message})
}

// ListMine returns every message the caller sent or received, newest first.
// GET /api/messages
func (h *MessageHandler) ListMine(c *gin.Context) {
	messages, err := h.messageService.ListMine(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(messages), gin.H{"messages": messages})
}

// Conversations returns one summary per counterpart with unread counts.
// GET /api/messages/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	conversations, err := h.messageService.Conversations(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	respondList(c, len(conversations), gin.H{"conversations": conversations})
}

// ConversationWith returns the full thread with one user, oldest first, and
// marks their messages to the caller as read.
// GET /api/messages/conversation/:userId
func (h *MessageHandler) ConversationWith(c *gin.Context) {
	otherUser, messages, err := h.messageService.ConversationWith(c.Request.Context(), middleware.CallerID(c), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrReceiverNotFound) {
			respondFail(c, http.StatusNotFound, err.Error())
			return
		}
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(messages),
		"data": gin.H{
			"user":     dto.NewUserSummary(otherUser),
			"messages": messages,
		},
	})
}

// MarkRead flips a single message to read; receiver only.
// PATCH /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	message, err := h.messageService.MarkRead(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			respondFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotReceiver):
			respondFail(c, http.StatusForbidden, err.Error())
		default:
			respondFail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"message": message})
}

// Delete removes a message; sender or receiver only.
// DELETE /api/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	err := h.messageService.Delete(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			respondFail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotParticipant):
			respondFail(c, http.StatusForbidden, err.Error())
		default:
			respondFail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.Status(http.StatusNoContent)
}
