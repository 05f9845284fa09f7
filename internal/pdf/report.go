package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"bankportal/internal/models"
)

// Generator — interface so handlers can be tested with a stub.
type Generator interface {
	GenerateCardReport(states []*models.UserCardState, generatedAt time.Time) (string, error)
}

// ReportGenerator renders the operator-facing card request summary.
type ReportGenerator struct {
	RootDir  string // storage root, e.g. "./files"
	fontName string
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		fontName: "Helvetica",
	}
}

func (g *ReportGenerator) GenerateCardReport(states []*models.UserCardState, generatedAt time.Time) (string, error) {
	filename := fmt.Sprintf("card_requests_%s.pdf", generatedAt.Format("20060102_150405"))
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Demandes de cartes", false)
	pdf.SetAuthor("Banking Portal", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	// core fonts are cp1252; translate the French accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr("Demandes de cartes"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  —  %d client(s)", generatedAt.Format("02.01.2006 15:04"), len(states))
	pdf.CellFormat(0, 7, tr(sub), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	for _, st := range states {
		g.sectionTitle(pdf, tr(fmt.Sprintf("%s %s <%s>", st.User.FirstName, st.User.LastName, st.User.Email)))
		if len(st.Requests) == 0 {
			pdf.SetFont(g.fontName, "I", 11)
			pdf.CellFormat(0, 6, tr("aucune demande"), "", 1, "L", false, 0, "")
		}
		for _, req := range st.Requests {
			completed := "-"
			if req.CompletedAt != nil {
				completed = req.CompletedAt.Format("02.01.2006")
			}
			g.kvLine(pdf, tr(req.CardType),
				tr(fmt.Sprintf("%s (demandé %s, terminé %s)", req.Status, req.RequestedAt.Format("02.01.2006"), completed)))
			if req.AdminNotes != "" {
				pdf.SetFont(g.fontName, "I", 10)
				pdf.CellFormat(0, 5, tr("note: "+req.AdminNotes), "", 1, "L", false, 0, "")
			}
		}
		for _, c := range st.Cards {
			state := "masquée"
			if c.IsDisplayed {
				state = "affichée"
			}
			g.kvLine(pdf, tr("carte "+c.CardType), tr(fmt.Sprintf("%s — %s", c.CardNumber, state)))
		}
		pdf.Ln(2)
		g.hr(pdf)
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("report dir: %w", err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
