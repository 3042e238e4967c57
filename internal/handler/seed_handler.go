package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"checkwise/internal/model"
	"checkwise/internal/service"
)

// DemoPassword is the login password shared by all seeded demo users.
const DemoPassword = "demo1234"

// SeedHandler handles demo data endpoints.
type SeedHandler struct {
	userService service.UserService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(userService service.UserService) *SeedHandler {
	return &SeedHandler{userService: userService}
}

// SeedUsersResponse represents the seed response.
type SeedUsersResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// DemoUsers returns one demo user per plan tier individually keyed so
// seeding stays idempotent. All demo users share DemoPassword so the secured
// endpoints can be exercised against seeded data.
func DemoUsers() []model.User {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(DemoPassword), 10)
	users := make([]model.User, 0, 4)
	for i, plan := range model.Plans() {
		users = append(users, model.User{
			ID:               "00000000-0000-0000-0000-00000000000" + string(rune('1'+i)),
			Email:            "demo-" + string(plan.Key) + "@checkwise.app",
			PasswordHash:     string(hashedPassword),
			FirstName:        "Demo",
			LastName:         plan.Name,
			PlanType:         plan.Key,
			CreditsTotal:     plan.Credits,
			CreditsRemaining: plan.Credits,
		})
	}
	return users
}

// SeedUsers godoc
// @Summary Seed demo users, one per plan tier
// @Tags seed
// @Produce json
// @Success 200 {object} SeedUsersResponse
// @Failure 500 {object} map[string]string
// @Router /seed/users [get]
func (h *SeedHandler) SeedUsers(c echo.Context) error {
	count, err := h.userService.SeedUsers(c.Request().Context(), DemoUsers())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, SeedUsersResponse{
		Message: "Demo users seeded successfully",
		Count:   count,
	})
}
