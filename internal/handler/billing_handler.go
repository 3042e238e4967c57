package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"checkwise/internal/errors"
	"checkwise/internal/model"
	"checkwise/internal/service"
)

// BillingHandler handles plan and billing endpoints. Actual payment
// processing is stubbed: applying a plan only updates the ledger.
type BillingHandler struct {
	userService service.UserService
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(userService service.UserService) *BillingHandler {
	return &BillingHandler{userService: userService}
}

// ApplyPlanRequest represents a plan change request.
type ApplyPlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// ListPlans godoc
// @Summary List the available plans
// @Tags billing
// @Produce json
// @Success 200 {array} model.Plan
// @Router /billing/plans [get]
func (h *BillingHandler) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Plans())
}

// ApplyPlan godoc
// @Summary Switch the signed-in user to a plan
// @Tags billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ApplyPlanRequest true "Plan key"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /billing/plan [post]
func (h *BillingHandler) ApplyPlan(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req ApplyPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	user, err := h.userService.ApplyPlan(c.Request().Context(), userID, req.Plan)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, user)
}
