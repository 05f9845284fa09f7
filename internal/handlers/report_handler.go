package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"bankportal/internal/pdf"
	"bankportal/internal/services"
)

type ReportHandler struct {
	Cards     *services.CardService
	Generator pdf.Generator
}

func NewReportHandler(cards *services.CardService, gen pdf.Generator) *ReportHandler {
	return &ReportHandler{Cards: cards, Generator: gen}
}

// @Summary      Card request summary (PDF)
// @Tags         Reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/reports/cards [get]
func (h *ReportHandler) CardReport(c *gin.Context) {
	states, err := h.Cards.ListUsers()
	if err != nil {
		log.Printf("[report][cards][err] list: %v", err)
		respondError(c, http.StatusInternalServerError, "report failed")
		return
	}
	path, err := h.Generator.GenerateCardReport(states, time.Now())
	if err != nil {
		log.Printf("[report][cards][err] generate: %v", err)
		respondError(c, http.StatusInternalServerError, "report failed")
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
