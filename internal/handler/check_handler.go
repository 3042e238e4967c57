package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"checkwise/internal/errors"
	"checkwise/internal/service"
)

// CheckHandler handles product check endpoints.
type CheckHandler struct {
	checkService service.CheckService
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(checkService service.CheckService) *CheckHandler {
	return &CheckHandler{checkService: checkService}
}

// CreateCheckRequest represents a product check submission. The platform tag
// is optional: when omitted it is derived from the product URL host.
type CreateCheckRequest struct {
	ProductURL string `json:"productUrl" validate:"required,url"`
	Platform   string `json:"platform"`
}

// CreateCheck godoc
// @Summary Submit a product link for analysis
// @Tags checks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCheckRequest true "Product link"
// @Success 201 {object} model.Check
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checks [post]
func (h *CheckHandler) CreateCheck(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateCheckRequest
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

	check, err := h.checkService.CreateCheck(c.Request().Context(), userID, req.ProductURL, req.Platform)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, check)
}

// GetRecentChecks godoc
// @Summary List the 10 most recent checks
// @Tags checks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Check
// @Failure 401 {object} errors.ErrorResponse
// @Router /checks/recent [get]
func (h *CheckHandler) GetRecentChecks(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	checks, err := h.checkService.ListChecks(c.Request().Context(), userID, 10)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, checks)
}

// ListChecks godoc
// @Summary List all checks for the signed-in user
// @Tags checks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Check
// @Failure 401 {object} errors.ErrorResponse
// @Router /checks [get]
func (h *CheckHandler) ListChecks(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	checks, err := h.checkService.ListChecks(c.Request().Context(), userID, 0)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, checks)
}

// GetCheck godoc
// @Summary Get one check by id
// @Tags checks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Check ID"
// @Success 200 {object} model.Check
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /checks/{id} [get]
func (h *CheckHandler) GetCheck(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	check, err := h.checkService.GetCheck(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, check)
}
