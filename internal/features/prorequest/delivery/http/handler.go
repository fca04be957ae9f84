package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"twa-games-backend/internal/common/logger"
	"twa-games-backend/internal/features/prorequest/service"
	userservice "twa-games-backend/internal/features/user/service"
)

type ProRequestHandler struct {
	service service.ProRequestService
	users   userservice.UserService
}

func NewProRequestHandler(service service.ProRequestService, users userservice.UserService) *ProRequestHandler {
	return &ProRequestHandler{service: service, users: users}
}

func (h *ProRequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/pro/request", h.RequestPro)
}

type proRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// Messages are localized to the requester's stored language.
var (
	pendingMessages = map[string]string{
		"uz": "Admin tasdiqlashi uchun yuborildi.",
		"en": "Sent for admin approval.",
		"ru": "Отправлено администратору на подтверждение.",
	}
	alreadyPendingMessages = map[string]string{
		"uz": "Sizning so'rovingiz ko'rib chiqilmoqda.",
		"en": "Your request is already being reviewed.",
		"ru": "Ваш запрос уже находится на рассмотрении.",
	}
)

// @Summary Request pro access
// @Description Creates a pending pro request unless one already exists.
// @Tags pro
// @Accept json
// @Produce json
// @Param request body proRequest true "Requesting user"
// @Success 200 {object} map[string]string "status and localized message"
// @Failure 400 {object} map[string]string "Malformed body"
// @Router /api/pro/request [post]
func (h *ProRequestHandler) RequestPro(c *gin.Context) {
	var req proRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	lang := h.users.Language(c.Request.Context(), req.UserID, "uz")

	err := h.service.Request(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyPending) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "already_pending",
				"message": localized(alreadyPendingMessages, lang),
			})
			return
		}
		logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to create pro request")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "pending",
		"message": localized(pendingMessages, lang),
	})
}

func localized(messages map[string]string, lang string) string {
	if msg, ok := messages[lang]; ok {
		return msg
	}
	return messages["uz"]
}
