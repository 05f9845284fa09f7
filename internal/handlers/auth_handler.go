package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bankportal/internal/config"
	"bankportal/internal/middleware"
	"bankportal/internal/models"
)

type AuthHandler struct {
	Auth config.AuthConfig
}

func NewAuthHandler(auth config.AuthConfig) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// @Summary      Operator login
// @Description  Checks operator credentials and returns an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.TrimSpace(req.Email)
	if !strings.EqualFold(email, h.Auth.AdminEmail) {
		log.Printf("[auth][login] unknown operator email=%q", email)
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	hash := strings.TrimSpace(h.Auth.AdminPasswordHash)
	if hash == "" {
		log.Printf("[auth][login] admin_password_hash is not configured")
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(req.Password))); err != nil {
		log.Printf("[auth][login] bcrypt mismatch email=%q: %v", email, err)
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	claims := &middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(middleware.JWTKey)
	if err != nil {
		log.Printf("[auth][login] sign token: %v", err)
		respondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}

	log.Printf("[auth][login] OK email=%q", email)
	respondOK(c, http.StatusOK, gin.H{"access_token": signed})
}
