package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/ruralpay/loanledger/internal/middleware"
	"github.com/ruralpay/loanledger/internal/services"
	"github.com/spf13/viper"
)

// Logout revokes the caller's operator token
// @Summary Revoke operator token
// @Description Denylist the bearer token until it would have expired
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/logout [post]
func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusUnauthorized, nil)
		return
	}

	expiry := time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	if err := middleware.RevokeToken(r.Context(), token, expiry); err != nil {
		log.Printf("[AUTH] Failed to revoke token: %v", err)
		services.SendErrorResponse(w, "Failed to revoke token", http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}
