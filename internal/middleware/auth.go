package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type contextKey string

const operatorKey contextKey = "operatorID"

var (
	ErrMissingToken = errors.New("authorization header required")
	ErrTokenRevoked = errors.New("token has been revoked")
)

var redisClient *redis.Client

// InitAuthMiddleware enables the token denylist. Without a client revoked
// tokens are accepted until they expire.
func InitAuthMiddleware(client *redis.Client) {
	redisClient = client
}

// AuthMiddleware admits requests carrying a valid operator JWT and stores the
// operator ID in the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		if revoked(r.Context(), token) {
			http.Error(w, ErrTokenRevoked.Error(), http.StatusUnauthorized)
			return
		}

		operatorID, err := validateToken(token)
		if err != nil {
			log.Printf("[AUTH] Rejected token: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), operatorKey, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OperatorFromContext returns the operator set by AuthMiddleware.
func OperatorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorKey).(string)
	return id, ok && id != ""
}

// WithOperator returns a copy of ctx carrying operatorID.
func WithOperator(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorKey, operatorID)
}

func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

// RevokeToken denylists a token for ttl. It is a no-op without redis.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Set(ctx, denylistKey(token), "1", ttl).Err()
}

func revoked(ctx context.Context, token string) bool {
	if redisClient == nil {
		return false
	}
	n, err := redisClient.Exists(ctx, denylistKey(token)).Result()
	if err != nil {
		log.Printf("[AUTH] Denylist lookup failed: %v", err)
		return false
	}
	return n > 0
}

func denylistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

func validateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("jwt.secret_key")), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}

	if id, ok := claims["user_id"]; ok && id != nil {
		return fmt.Sprintf("%v", id), nil
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token carries no operator")
	}
	return sub, nil
}
