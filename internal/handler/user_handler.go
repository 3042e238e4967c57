package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"checkwise/internal/errors"
	"checkwise/internal/service"
)

// UserHandler handles user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetCurrentUser godoc
// @Summary Get the signed-in user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/user [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}
