package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bankportal/internal/services"
)

type CardHandler struct {
	Service *services.CardService
}

func NewCardHandler(svc *services.CardService) *CardHandler {
	return &CardHandler{Service: svc}
}

func (h *CardHandler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrUnknownCardType):
		respondError(c, http.StatusBadRequest, "card type must be physical or virtual")
	case errors.Is(err, services.ErrUnknownCardStatus):
		respondError(c, http.StatusBadRequest, "unknown card status")
	case errors.Is(err, services.ErrInvalidTransition):
		respondError(c, http.StatusBadRequest, "invalid status transition")
	default:
		log.Printf("[card][err] %v", err)
		respondError(c, http.StatusInternalServerError, "card operation failed")
	}
}

// @Summary      List users with card state
// @Tags         Cards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/users [get]
func (h *CardHandler) ListUsers(c *gin.Context) {
	states, err := h.Service.ListUsers()
	if err != nil {
		h.mapError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"users": states})
}

// @Summary      Open a card request
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/cards/requests [post]
func (h *CardHandler) CreateRequest(c *gin.Context) {
	var req struct {
		UserID     string `json:"user_id" binding:"required"`
		CardType   string `json:"card_type" binding:"required"`
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.Service.CreateRequest(req.UserID, req.CardType, req.Status, req.AdminNotes)
	if err != nil {
		h.mapError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"request": created})
}

// @Summary      Move a card request to a new status
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/cards/status [post]
func (h *CardHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		UserID     string  `json:"user_id" binding:"required"`
		CardType   string  `json:"card_type" binding:"required"`
		Status     string  `json:"status" binding:"required"`
		AdminNotes *string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.Service.UpdateStatus(req.UserID, req.CardType, req.Status, req.AdminNotes)
	if err != nil {
		h.mapError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"request": updated})
}

// @Summary      Activate a card with final materials
// @Tags         Cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/cards/activate [post]
func (h *CardHandler) ActivateCard(c *gin.Context) {
	var req struct {
		UserID     string `json:"user_id" binding:"required"`
		CardType   string `json:"card_type" binding:"required"`
		CardNumber string `json:"card_number" binding:"required"`
		ExpiryDate string `json:"expiry_date" binding:"required"`
		CVV        string `json:"cvv" binding:"required"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	card, err := h.Service.ActivateCard(req.UserID, req.CardType, services.CardActivation{
		CardNumber: req.CardNumber,
		ExpiryDate: req.ExpiryDate,
		CVV:        req.CVV,
		Notes:      req.AdminNotes,
	})
	if err != nil {
		h.mapError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"card": card})
}

// @Summary      Backfill requests for users that have none
// @Tags         Cards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/cards/migrate [post]
func (h *CardHandler) Migrate(c *gin.Context) {
	created, err := h.Service.MigrateExisting()
	if err != nil {
		h.mapError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"created": created})
}
