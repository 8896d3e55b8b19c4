package claims

import (
	"fmt"
	"math"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// TaxRate is the tax already included in backend totals.
const TaxRate = 0.08

// FormatCurrency renders an amount in rupees, e.g. "Rs. 1250.00".
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("Rs. %.2f", amount)
}

// Subtotal backs the tax out of a tax-inclusive total.
func Subtotal(total float64) float64 {
	return total / (1 + TaxRate)
}

// Breakdown is the money shown for a stored claim.
type Breakdown struct {
	Original  float64
	Deduction float64
	Final     float64
	Subtotal  float64
	Tax       float64
	Limited   bool
}

// BreakdownFor derives display figures from a stored claim. For limited
// claims the backend halves the payout, so the original is shown as twice
// the final amount with the other half as the deduction.
func BreakdownFor(status string, final float64) Breakdown {
	b := Breakdown{
		Original: final,
		Final:    final,
		Subtotal: Subtotal(final),
		Limited:  IsLimited(status),
	}
	b.Tax = final - b.Subtotal
	if b.Limited {
		b.Original = final * 2
		b.Deduction = final
	}
	return b
}

// HasDamage reports whether a stored claim has anything to repair.
func HasDamage(d models.ClaimDetail) bool {
	return len(d.LineItems) > 0 || d.EstimatedTotal > 0
}

// ConfidencePercent converts a 0..1 confidence into a rounded percentage.
func ConfidencePercent(c float64) float64 {
	return math.Round(c*1000) / 10
}

type WarningLevel int

const (
	WarningNone WarningLevel = iota
	WarningSecondClaim
	WarningRepeatClaims
)

// ClaimWarning describes the repeat-claim banner shown before intake.
type ClaimWarning struct {
	Level       WarningLevel
	ClaimNumber int
	Title       string
	Message     string
}

// WarningFor builds the banner for a user with previous claims already on file.
func WarningFor(previous int) ClaimWarning {
	w := ClaimWarning{ClaimNumber: previous + 1}
	switch {
	case previous <= 0:
		w.Level = WarningNone
	case previous == 1:
		w.Level = WarningSecondClaim
		w.Title = "Second claim within 1 year"
		w.Message = "This will be your 2nd claim. Your payout may be limited and your premium may increase at renewal."
	default:
		w.Level = WarningRepeatClaims
		w.Title = fmt.Sprintf("Claim #%d within 1 year", w.ClaimNumber)
		w.Message = "You have filed multiple claims recently. This claim will be reviewed closely and the payout is limited."
	}
	return w
}

func (w ClaimWarning) Tone() Tone {
	if w.Level == WarningRepeatClaims {
		return ToneDanger
	}
	return ToneWarning
}
