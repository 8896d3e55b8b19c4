// Package report renders the damage analysis PDF handed to claimants.
package report

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

const (
	Title  = "AI Damage Analysis Report"
	Footer = "Report generated by AI Estimator"
)

var ErrNoAnalysis = errors.New("claim has no analysis to report")

// Data is everything printed on a report.
type Data struct {
	ClaimID   int64
	Vehicle   string
	Client    string
	Generated time.Time

	DamageDetected bool
	Confidence     float64
	Severity       string
	// Image is a base64 JPEG with detected damage plotted on it.
	Image string

	LineItems []models.LineItem
	Subtotal  float64
	Total     float64
}

// FromEstimate builds report data for a claim fresh out of intake.
func FromEstimate(claimID int64, req models.ClaimRequest, fe models.FinalEstimate, now time.Time) Data {
	subtotal := fe.Estimate.Subtotal
	if subtotal == 0 {
		subtotal = claims.Subtotal(fe.Estimate.Total)
	}
	return Data{
		ClaimID:        claimID,
		Vehicle:        vehicleName(req.VehicleMakeModel, req.VehicleRegistrationNumber),
		Client:         strings.TrimSpace(req.FirstName + " " + req.LastName),
		Generated:      now,
		DamageDetected: fe.Analysis.IsDamaged,
		Confidence:     fe.Analysis.DamageConfidence,
		Severity:       fe.Analysis.DamageSeverity.SeverityLabel,
		Image:          fe.Analysis.PlottedImage,
		LineItems:      fe.Estimate.LineItems,
		Subtotal:       subtotal,
		Total:          fe.Estimate.Total,
	}
}

// FromClaimDetail builds report data from a stored claim.
func FromClaimDetail(d models.ClaimDetail, now time.Time) (Data, error) {
	if d.AnalysisResponse == nil && len(d.LineItems) == 0 {
		return Data{}, ErrNoAnalysis
	}
	data := Data{
		ClaimID:   d.ID,
		Vehicle:   vehicleName(d.VehicleMakeModel, d.VehicleRegistrationNumber),
		Client:    strings.TrimSpace(d.FirstName + " " + d.LastName),
		Generated: now,
		LineItems: d.LineItems,
		Subtotal:  claims.Subtotal(d.EstimatedTotal),
		Total:     d.EstimatedTotal,
	}
	if a := d.AnalysisResponse; a != nil {
		data.DamageDetected = a.IsDamaged
		data.Confidence = a.DamageConfidence
		data.Severity = a.DamageSeverity.SeverityLabel
		data.Image = a.PlottedImage
	}
	return data, nil
}

func vehicleName(makeModel, registration string) string {
	switch {
	case makeModel == "":
		return registration
	case registration == "":
		return makeModel
	}
	return fmt.Sprintf("%s (%s)", makeModel, registration)
}

// Filename is the download name for a claim's report.
func Filename(claimID int64) string {
	return fmt.Sprintf("Claim_Report_%d.pdf", claimID)
}

// Write renders data as a PDF to w.
func Write(w io.Writer, data Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreator("AI Estimator", true)
	pdf.SetCreationDate(data.Generated)
	pdf.AliasNbPages("{nb}")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, Footer, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	writeHeader(pdf, tr, data)
	writeMetrics(pdf, tr, data)
	if err := writeEvidence(pdf, data.Image); err != nil {
		return err
	}
	writeBreakdown(pdf, tr, data)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// Render is Write into a buffer.
func Render(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *fpdf.Fpdf, tr func(string) string, data Data) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 12, Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Claim ID: #%d", data.ClaimID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Vehicle: "+data.Vehicle), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Client: "+data.Client), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Report Date: "+data.Generated.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func writeMetrics(pdf *fpdf.Fpdf, tr func(string) string, data Data) {
	detected := "No"
	if data.DamageDetected {
		detected = "Yes"
	}
	severity := data.Severity
	if severity == "" {
		severity = "N/A"
	}

	rows := [][2]string{
		{"Damage Detected", detected},
		{"Detection Confidence", fmt.Sprintf("%.1f%%", claims.ConfidencePercent(data.Confidence))},
		{"Estimated Severity", severity},
		{"Total Estimated Cost", claims.FormatCurrency(data.Total)},
	}

	tableHeader(pdf, []string{"Metric", "Value"}, []float64{95, 95})
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(95, 8, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(95, 8, tr(r[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeEvidence(pdf *fpdf.Fpdf, image string) error {
	if image == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(stripDataURL(image))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidImage, err)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Visual Evidence", "", 1, "L", false, 0, "")

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	info := pdf.RegisterImageOptionsReader("evidence", opts, bytes.NewReader(raw))
	if pdf.Err() {
		return fmt.Errorf("%w: %v", models.ErrInvalidImage, pdf.Error())
	}

	width := 120.0
	height := width * info.Height() / info.Width()
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("evidence", (pageW-width)/2, pdf.GetY(), width, height, true, opts, 0, "")
	pdf.Ln(6)
	return nil
}

func writeBreakdown(pdf *fpdf.Fpdf, tr func(string) string, data Data) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Detailed Cost Breakdown", "", 1, "L", false, 0, "")

	widths := []float64{50, 45, 50, 45}
	tableHeader(pdf, []string{"Part", "Damage Type", "Recommended Action", "Estimated Amount"}, widths)

	pdf.SetFont("Helvetica", "", 10)
	if len(data.LineItems) == 0 {
		pdf.CellFormat(190, 8, "No repairable damage found", "1", 1, "C", false, 0, "")
	}
	for _, item := range data.LineItems {
		pdf.CellFormat(widths[0], 8, tr(item.Part), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, tr(item.DamageType), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, tr(item.Action), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, claims.FormatCurrency(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(145, 7, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, claims.FormatCurrency(data.Subtotal), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(145, 8, "Grand Total (incl. tax):", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 8, claims.FormatCurrency(data.Total), "", 1, "R", false, 0, "")
}

func tableHeader(pdf *fpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(33, 37, 41)
}

func stripDataURL(s string) string {
	if i := strings.Index(s, ","); strings.HasPrefix(s, "data:") && i >= 0 {
		return s[i+1:]
	}
	return s
}
