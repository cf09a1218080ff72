package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"coinvault/internal/errors"
	"coinvault/internal/model"
	"coinvault/internal/service"
)

// LeaderboardHandler handles the global leaderboard endpoint.
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// LeaderboardResponse represents the leaderboard payload.
type LeaderboardResponse struct {
	Entries []model.LeaderboardEntry `json:"entries"`
}

// GetLeaderboard godoc
// @Summary Get the top profiles ordered by coins
// @Tags leaderboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries, clamped to [1,100], default 25"
// @Success 200 {object} LeaderboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	// Missing or malformed limit falls back to the default.
	limit := service.DefaultLeaderboardLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.leaderboardService.Top(c.Request().Context(), limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return c.JSON(http.StatusOK, LeaderboardResponse{Entries: entries})
}
