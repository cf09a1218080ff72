package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"coinvault/internal/errors"
	"coinvault/internal/model"
	"coinvault/internal/service"
)

// ContextUserKey is the echo context key holding the authenticated user.
const ContextUserKey = "user"

// currentUser returns the user resolved by the auth middleware.
func currentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok
}

// ProfileHandler handles profile snapshot endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// SyncRequest represents a client snapshot upload. All fields are raw JSON:
// coins may arrive as a number or a string, upgrades/stats are opaque.
type SyncRequest struct {
	Coins    json.RawMessage `json:"coins"`
	Upgrades json.RawMessage `json:"upgrades"`
	Stats    json.RawMessage `json:"stats"`
}

// GetProfile godoc
// @Summary Get the authenticated player's profile snapshot
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Snapshot
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	snapshot, err := h.profileService.Snapshot(c.Request().Context(), user)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, snapshot)
}

// Sync godoc
// @Summary Upload and persist a profile snapshot
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SyncRequest true "Snapshot payload"
// @Success 200 {object} model.Snapshot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sync [post]
func (h *ProfileHandler) Sync(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidToken)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req SyncRequest
	if err := c.Bind(&req); err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidPayload)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	snapshot, err := h.profileService.Sync(c.Request().Context(), user, req.Coins, req.Upgrades, req.Stats)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, snapshot)
}
