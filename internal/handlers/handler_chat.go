package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/procurelens/procurement_chat_app/internal/core/ports/services"
	"github.com/procurelens/procurement_chat_app/internal/dto"
	"github.com/procurelens/procurement_chat_app/internal/utils"
)

// chatHandler handles the conversational query endpoint
type chatHandler struct {
	chatService portssvc.ChatSvcFacade
}

// newChatHandler creates a new chatHandler
func newChatHandler(cs portssvc.ChatSvcFacade) *chatHandler {
	return &chatHandler{
		chatService: cs,
	}
}

// registerChatRoutes registers the conversational query route
func registerChatRoutes(r *gin.Engine, chatService portssvc.ChatSvcFacade) {
	h := newChatHandler(chatService)

	r.POST("/chat", h.postChat)
}

// postChat godoc
// @Summary Answer a natural language procurement query
// @Description Classifies the message, runs the matching aggregation and returns a sentence plus the raw rows
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "User message"
// @Success 200 {object} dto.ChatResponse
// @Router /chat [post]
func (h *chatHandler) postChat(c *gin.Context) {
	logger := utils.GetLoggerFromCtx(c.Request.Context())

	// A malformed body is treated the same as an empty message; the
	// endpoint always answers 200 with a success flag in the envelope.
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind chat request", slog.String("error", err.Error()))
	}

	response := h.chatService.HandleMessage(c.Request.Context(), req.Message)

	logger.Info("Chat message handled", slog.Bool("success", response.Success))
	c.JSON(http.StatusOK, response)
}
