package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twa-games-backend/internal/common/logger"
	"twa-games-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/user/:telegramId", h.GetUser)
}

// @Summary Get user by Telegram ID
// @Description Returns the public projection of a registered user.
// @Tags users
// @Produce json
// @Param telegramId path int true "Telegram user ID"
// @Success 200 {object} models.UserResponse "User data"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/user/{telegramId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("telegramId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		logger.Error().Err(err).Int64("user_id", id).Msg("Failed to get user")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
