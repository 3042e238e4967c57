package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// currentUserID resolves the requesting user's id from the JWT claims set by
// the auth middleware.
func currentUserID(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing user id claim")
	}
	return userID, nil
}
