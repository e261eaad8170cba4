package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"office-pricing/internal/api/models"
)

// AnalystNameKey is the gin context key carrying the authenticated analyst's
// display name.
const AnalystNameKey = "analyst_name"

// AnalystAuth requires a Bearer JWT signed with secret and carrying a
// "name" claim. Override writes are attributed to that name.
func AnalystAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, err := analystFromHeader(c.GetHeader("Authorization"), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "UNAUTHORIZED",
					Message: err.Error(),
				},
			})
			return
		}
		c.Set(AnalystNameKey, name)
		c.Next()
	}
}

func analystFromHeader(header, secret string) (string, error) {
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", errors.New("Authorization header must be a Bearer token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	name, _ := claims["name"].(string)
	if name == "" {
		return "", errors.New("token has no analyst name")
	}
	return name, nil
}
