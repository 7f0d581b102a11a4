package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/tournament-pairing/utils"
)

func GetUserRoleFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	// Ищем claim по имени utils.ClaimRole ("role")
	roleClaim, ok := claims[utils.ClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", utils.ClaimRole)
	}

	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", utils.ClaimRole, roleClaim)
	}

	switch roleStr {
	case utils.RoleOrganizer:
		return roleStr, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
