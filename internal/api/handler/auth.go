package handler

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwt "github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}
	return []byte(secret)
}

// generateJWT issues a signed token carrying the approver's admin ID.
func generateJWT(adminID string) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
		"iss":      "hosteldada-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// validateAndGetAdminID checks the token signature and expiry and returns the
// admin_id claim.
func (h *Handler) validateAndGetAdminID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	adminID, _ := claims["admin_id"].(string)
	if adminID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return adminID, nil
}

// GetAdminToken mints an admin identity and returns a JWT for it. The ID ends
// up in ApprovedBy when this admin approves an assignment.
func (h *Handler) GetAdminToken(c *gin.Context) {
	adminUUID, _ := uuid.NewRandom()
	adminID := adminUUID.String()

	token, err := generateJWT(adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "admin_id": adminID})
}

// RequireAuth is gin middleware that validates the bearer token and stores
// the admin ID in the request context.
func (h *Handler) RequireAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	adminID, err := h.validateAndGetAdminID(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}
	c.Set("admin_id", adminID)
	c.Next()
}
