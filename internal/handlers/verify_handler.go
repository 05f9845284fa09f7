package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bankportal/internal/services"
)

type VerifyHandler struct {
	Service *services.VerificationService
	Email   services.EmailService

	// ExposeCode echoes the issued code back as debugCode. Off in production.
	ExposeCode bool
}

func NewVerifyHandler(svc *services.VerificationService, email services.EmailService, exposeCode bool) *VerifyHandler {
	return &VerifyHandler{Service: svc, Email: email, ExposeCode: exposeCode}
}

// @Summary      Send a verification code
// @Description  Issues a 6-digit code for the address and emails it
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string}  true  "Target address"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /send-code [post]
func (h *VerifyHandler) SendCode(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respondError(c, http.StatusBadRequest, "email is required")
		return
	}

	code, err := h.Service.IssueCode(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			respondError(c, http.StatusBadRequest, "invalid email address")
			return
		}
		log.Printf("[verify][send][err] email=%s err=%v", req.Email, err)
		respondError(c, http.StatusInternalServerError, "could not issue code")
		return
	}

	if err := h.Email.SendVerificationCode(req.Email, code); err != nil {
		log.Printf("[verify][send][err] mail delivery email=%s err=%v", req.Email, err)
		respondError(c, http.StatusInternalServerError, "could not send email")
		return
	}

	payload := gin.H{}
	if h.ExposeCode {
		payload["debugCode"] = code
	}
	respondOK(c, http.StatusOK, payload)
}

// @Summary      Verify a code
// @Description  Checks a submitted 6-digit code against the stored one
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string,code=string}  true  "Address and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /verify-code [post]
func (h *VerifyHandler) VerifyCode(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Code == "" {
		respondError(c, http.StatusBadRequest, "email and code are required")
		return
	}

	err := h.Service.ValidateCode(req.Email, req.Code)
	if err == nil {
		respondOK(c, http.StatusOK, nil)
		return
	}

	var incorrect *services.IncorrectCodeError
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		respondError(c, http.StatusBadRequest, "invalid email address")
	case errors.Is(err, services.ErrInvalidCode):
		respondError(c, http.StatusBadRequest, "code must be 6 digits")
	case errors.Is(err, services.ErrNoCodeRequested):
		respondError(c, http.StatusBadRequest, "no code requested, please request a new code")
	case errors.Is(err, services.ErrCodeExpired):
		respondError(c, http.StatusBadRequest, "code expired, please request a new code")
	case errors.Is(err, services.ErrTooManyAttempts):
		respondError(c, http.StatusBadRequest, "too many attempts, please request a new code")
	case errors.As(err, &incorrect):
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("incorrect code, %d attempt(s) remaining", incorrect.Remaining))
	default:
		log.Printf("[verify][check][err] email=%s err=%v", req.Email, err)
		respondError(c, http.StatusInternalServerError, "verification failed")
	}
}
