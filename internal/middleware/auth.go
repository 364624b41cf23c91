package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Claims represents the token claims the API consumes
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
}

// AuthService issues and verifies bearer tokens for the local server. The
// serverless deployment never goes through this path: there the API gateway
// authorizer validates tokens before the function runs and the entrypoints
// read the subject from the authorizer claims.
type AuthService struct {
	config *AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) *AuthService {
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour // Default to 24 hours
	}
	if config.Issuer == "" {
		config.Issuer = "social-feed-api"
	}
	return &AuthService{config: config}
}

// GenerateToken signs a development token carrying the given subject. Used
// by the local server's dev token route only.
func (a *AuthService) GenerateToken(subject, email string) (string, error) {
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    a.config.Issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Subject verifies a bearer token against the configured secret and returns
// its claims. Tokens signed with any other key or algorithm are rejected, as
// are valid tokens missing a subject.
func (a *AuthService) Subject(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// Authentication middleware that resolves the requester identity from the
// Authorization header
func Authentication(authService *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>" format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := authService.Subject(tokenParts[1])
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			}).Warn("Token validation failed")

			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Store user information in context
		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)

		logrus.WithFields(logrus.Fields{
			"user_id": claims.Subject,
			"path":    c.Request.URL.Path,
		}).Debug("User authenticated successfully")

		c.Next()
	}
}

// GetUserFromContext extracts user information from gin context
func GetUserFromContext(c *gin.Context) (userID, email string, ok bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		return "", "", false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		return "", "", false
	}

	emailInterface, _ := c.Get("email")
	emailStr, _ := emailInterface.(string)

	return userIDStr, emailStr, true
}
