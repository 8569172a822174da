package api

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"

	"invitacion/internal/auth"
	"invitacion/internal/models"
)

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
}

// @Summary      Logs the organizer in
// @Description  Authenticates the configured organizer account and returns a short-lived access token for the audit endpoints.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Invalid username or password"
// @Failure      500            {string}  string "Internal Server Error"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	admin := models.Admin{
		Username:     s.config.Admin.Username,
		PasswordHash: s.config.Admin.PasswordHash,
	}
	if admin.Username == "" || admin.PasswordHash == "" {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) == 1
	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) || !userOK {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	accessToken, err := auth.GenerateJWT(&admin, s.config.JWT.Secret)
	if err != nil {
		log.Printf("ERROR: Failed to generate access token: %v", err)
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{AccessToken: accessToken})
}
