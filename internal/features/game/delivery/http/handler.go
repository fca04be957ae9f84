package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twa-games-backend/internal/common/logger"
	"twa-games-backend/internal/features/game/models"
	"twa-games-backend/internal/features/game/service"
)

type GameHandler struct {
	service service.GameService
}

func NewGameHandler(service service.GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) RegisterRoutes(router *gin.RouterGroup) {
	games := router.Group("/games")
	{
		games.GET("/:userId", h.ListGames)
		games.POST("/create", h.CreateGame)
		games.DELETE("/delete/:shareLink", h.DeleteGame)
		games.POST("/play/:shareLink", h.RecordPlay)
	}
}

type createGameRequest struct {
	UserID    int64             `json:"user_id" binding:"required"`
	GameType  string            `json:"game_type" binding:"required"`
	Questions []models.Question `json:"questions"`
}

// @Summary List games by creator
// @Tags games
// @Produce json
// @Param userId path int true "Creator Telegram ID"
// @Success 200 {array} models.GameResponse "Games, newest first"
// @Router /api/games/{userId} [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid user ID"})
		return
	}

	games, err := h.service.ListGames(c.Request.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to list games")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, games)
}

// @Summary Create a game
// @Tags games
// @Accept json
// @Produce json
// @Param request body createGameRequest true "Game payload"
// @Success 200 {object} map[string]string "status and share_link"
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /api/games/create [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	shareLink, err := h.service.CreateGame(c.Request.Context(), req.UserID, req.GameType, req.Questions)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", req.UserID).Msg("Failed to create game")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "share_link": shareLink})
}

// @Summary Delete a game by share link
// @Description Idempotent: reports success even when nothing was deleted.
// @Tags games
// @Produce json
// @Param shareLink path string true "Share link token"
// @Success 200 {object} map[string]string "status"
// @Router /api/games/delete/{shareLink} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	shareLink := c.Param("shareLink")

	if err := h.service.DeleteGame(c.Request.Context(), shareLink); err != nil {
		logger.Error().Err(err).Str("share_link", shareLink).Msg("Failed to delete game")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary Record a play
// @Description Increments the play counter and returns the updated game.
// @Tags games
// @Produce json
// @Param shareLink path string true "Share link token"
// @Success 200 {object} models.GameResponse "Updated game"
// @Failure 404 {object} map[string]string "Unknown share link"
// @Router /api/games/play/{shareLink} [post]
func (h *GameHandler) RecordPlay(c *gin.Context) {
	shareLink := c.Param("shareLink")

	game, err := h.service.RecordPlay(c.Request.Context(), shareLink)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Game not found"})
			return
		}
		logger.Error().Err(err).Str("share_link", shareLink).Msg("Failed to record play")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, game)
}
