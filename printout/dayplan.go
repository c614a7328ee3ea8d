package printout

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"voyago/apperr"
	"voyago/finalday"
	"voyago/models"
	"voyago/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Handler renders printable day plans from customized itinerary days.
type Handler struct {
	svc *finalday.Service
}

func NewHandler(svc *finalday.Service) *Handler {
	return &Handler{svc: svc}
}

// GET /api/itineraries/:originid/days/:daynumber/print
func (h *Handler) PrintDayPlan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	originID := ps.ByName("originid")
	dayNumber := utils.ParseInt(ps.ByName("daynumber"))
	if dayNumber < 1 {
		utils.Fail(w, apperr.BadRequest("day number must be a positive integer"))
		return
	}

	day, err := h.svc.GetDay(ctx, originID, dayNumber, models.DayTypeCustomized)
	if err != nil {
		utils.Fail(w, err)
		return
	}

	payload := fmt.Sprintf("voyago|%s|%d|%s", originID, dayNumber, day.DayID)
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 128)
	if err != nil {
		utils.Fail(w, apperr.Internal("failed to generate QR code", err))
		return
	}

	pdf := buildDayPlanPDF(day, qrPNG)
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.Fail(w, apperr.Internal("failed to generate day plan", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=dayplan-%s-%d.pdf", originID, dayNumber))
	w.Write(buf.Bytes())
}

func buildDayPlanPDF(day *models.ItineraryDay, qrPNG []byte) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	title := day.Title
	if title == "" {
		title = fmt.Sprintf("Day %d", day.DayNumber)
	}
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, title, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Plan: %s\nDay: %d\nPrinted: %s",
		day.OriginID,
		day.DayNumber,
		time.Now().Format("02 Jan 2006 15:04"),
	), "", "L", false)
	if day.Description != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 8, day.Description, "", "L", false)
	}
	pdf.Ln(5)

	// Activity table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(235, 235, 245)
	pdf.CellFormat(25, 9, "Slot", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 9, "Activity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 9, "Location", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 9, "Min", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 9, "Cost", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, a := range day.Activities {
		pdf.CellFormat(25, 8, a.TimeSlot, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, a.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, a.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", a.DurationMin), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%.0f", a.Cost), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 9, "Day total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 9, fmt.Sprintf("%.0f", day.DayTotal), "1", 1, "R", false, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 230, 40, 40, false, imgOpts, 0, "")

	if day.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(120, 6, "Notes: "+day.Notes, "", "L", false)
	}
	return pdf
}
