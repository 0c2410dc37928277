package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"evorgs/internal/middleware"
	"evorgs/internal/pkg/jwt"
	"evorgs/internal/pkg/response"
	"evorgs/internal/pkg/validator"
)

type Handler struct {
	service    *Service
	hub        *Hub
	jwtService *jwt.Service
	logger     *zap.Logger
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, hub: hub, jwtService: jwtService, logger: logger}
}

// Open godoc
// @Summary	Open (or return) a conversation with a vendor
// @Tags	Chat
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	body	body	OpenConversationRequest	true	"payload"
// @Success	200	{object}	map[string]interface{}
// @Router	/chat/conversations [post]
func (h *Handler) Open(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	conv, err := h.service.OpenConversation(c.Request.Context(), p.ID, req.VendorID, req.BookingID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv)
}

func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	convs, err := h.service.Conversations(c.Request.Context(), p.Role, p.ID)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, convs)
}

func (h *Handler) Send(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidInput, "Validation failed", fields)
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), p.Role, p.ID, id, req.Content)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) Messages(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.service.Messages(c.Request.Context(), p.Role, p.ID, id, limit, offset)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

func (h *Handler) MarkRead(c *gin.Context) {
	p, ok := middleware.MustPrincipal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	n, err := h.service.MarkRead(c.Request.Context(), p.Role, p.ID, id)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked_read": n})
}

// AdminConversation lets support staff inspect any thread.
func (h *Handler) AdminConversation(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	conv, err := h.service.GetConversation(c.Request.Context(), id)
	if err != nil {
		handleChatError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	msgs, err := h.service.Messages(c.Request.Context(), middleware.RoleAdmin, 0, id, limit, offset)
	if err != nil {
		handleChatError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversation": conv, "messages": msgs})
}

// ServeWS upgrades to WebSocket. Authentication happens once at
// connect via ?token= because browsers cannot set headers on
// WebSocket requests.
//
// Endpoint: GET /ws/chat?token=JWT_TOKEN
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Token is required")
		return
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Invalid or expired token")
		return
	}

	ids, err := h.service.ConversationIDs(c.Request.Context(), claims.Role, claims.PrincipalID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.ServeWS(conn, claims.Role, claims.PrincipalID, ids)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Invalid id")
		return 0, false
	}
	return id, true
}

func handleChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Conversation not found")
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not a participant")
	case errors.Is(err, ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidInput, "Message content is empty")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
	}
}
