package views

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

type ClaimFormProps struct {
	Warning claims.ClaimWarning
	Form    models.ClaimRequest
	Error   string
}

type formField struct {
	name, label, typ, value string
	required                bool
}

func intValue(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatValue(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func claimSections(r models.ClaimRequest) []struct {
	title  string
	fields []formField
} {
	return []struct {
		title  string
		fields []formField
	}{
		{"Vehicle", []formField{
			{"vehicleRegistrationNumber", "Registration number", "text", r.VehicleRegistrationNumber, true},
			{"vehicleMakeModel", "Make and model", "text", r.VehicleMakeModel, true},
			{"yearOfManufacture", "Year of manufacture", "number", intValue(r.YearOfManufacture), false},
			{"fuelType", "Fuel type", "text", r.FuelType, false},
			{"odometerReading", "Odometer reading", "number", intValue(r.OdometerReading), false},
			{"chassisNumber", "Chassis number", "text", r.ChassisNumber, false},
			{"engineNumber", "Engine number", "text", r.EngineNumber, false},
		}},
		{"Incident", []formField{
			{"dateOfIncident", "Date of incident", "date", r.DateOfIncident, true},
			{"location", "Location", "text", r.Location, false},
			{"claimReason", "Claim reason", "text", r.ClaimReason, false},
			{"incidentDescription", "Description", "text", r.IncidentDescription, false},
		}},
		{"Policyholder", []formField{
			{"firstName", "First name", "text", r.FirstName, true},
			{"lastName", "Last name", "text", r.LastName, true},
			{"mobileNumber", "Mobile number", "tel", r.MobileNumber, true},
			{"email", "Email", "email", r.Email, true},
			{"aadharNumber", "Aadhar number", "text", r.AadharNumber, false},
			{"drivingLicenseNumber", "Driving licence number", "text", r.DrivingLicenseNumber, false},
			{"address", "Address", "text", r.Address, false},
		}},
		{"Policy", []formField{
			{"insuranceCompany", "Insurance company", "text", r.InsuranceCompany, true},
			{"policyNumber", "Policy number", "text", r.PolicyNumber, true},
			{"policyExpiryDate", "Policy expiry date", "date", r.PolicyExpiryDate, false},
			{"claimNumber", "Claim number", "text", r.ClaimNumber, false},
			{"firNumber", "FIR number", "text", r.FirNumber, false},
			{"preferredGarage", "Preferred garage", "text", r.PreferredGarage, false},
			{"urgency", "Urgency", "text", r.Urgency, false},
			{"budgetEstimate", "Budget estimate", "number", floatValue(r.BudgetEstimate), false},
			{"insuredDeclaredValue", "Insured declared value", "number", floatValue(r.InsuredDeclaredValue), false},
		}},
	}
}

// ClaimWarningBanner warns repeat claimants before they file again.
func ClaimWarningBanner(w claims.ClaimWarning) templ.Component {
	if w.Level == claims.WarningNone {
		return templ.NopComponent
	}
	return Banner(BannerProps{ID: "claim-warning", Tone: w.Tone(), Title: w.Title, Message: w.Message})
}

// NewClaimPage is the first intake step.
func NewClaimPage(props ClaimFormProps) templ.Component {
	return component(func(p *printer) {
		p.raw(`<section><h1 class="mb-2 text-3xl font-bold">New claim</h1>`)
		p.f(`<p class="mb-6 text-gray-600">Step 1 of 2: claim details (claim #%d)</p>`, props.Warning.ClaimNumber)
		p.component(ClaimWarningBanner(props.Warning))
		if props.Error != "" {
			p.component(ErrorBanner("claim-error", props.Error))
		}
		p.raw(`<form id="claim-form" method="post" action="/new-claim" class="space-y-8">`)
		for _, s := range claimSections(props.Form) {
			p.f(`<fieldset class="grid gap-4 rounded-lg bg-white p-6 shadow md:grid-cols-2"><legend class="font-semibold">%s</legend>`, s.title)
			for _, f := range s.fields {
				p.component(input(f.name, f.label, f.typ, f.value, f.required))
			}
			p.raw(`</fieldset>`)
		}
		p.raw(`<fieldset class="flex gap-6 rounded-lg bg-white p-6 shadow">`)
		p.component(checkbox("isFirFiled", "FIR filed", props.Form.IsFirFiled))
		p.component(checkbox("needsPickup", "Needs pickup", props.Form.NeedsPickup))
		p.component(checkbox("hasZeroDepreciationCover", "Zero depreciation cover", props.Form.HasZeroDepreciationCover))
		p.raw(`</fieldset><button type="submit" class="rounded bg-blue-700 px-6 py-2 text-white">Continue to photo upload</button></form></section>`)
	})
}

func checkbox(name, label string, checked bool) templ.Component {
	return component(func(p *printer) {
		p.f(`<label class="flex items-center gap-2 text-sm"><input type="checkbox" name="%s" value="true"`, name)
		if checked {
			p.raw(` checked`)
		}
		p.f(`>%s</label>`, label)
	})
}

type UploadProps struct {
	ClaimID int64
	Error   string
}

// UploadPage is the second intake step.
func UploadPage(props UploadProps) templ.Component {
	return component(func(p *printer) {
		p.raw(`<section class="mx-auto max-w-lg"><h1 class="mb-2 text-3xl font-bold">Upload damage photo</h1>`)
		p.f(`<p class="mb-6 text-gray-600">Step 2 of 2: claim #%d</p>`, props.ClaimID)
		if props.Error != "" {
			p.component(ErrorBanner("upload-error", props.Error))
		}
		p.f(`<form id="upload-form" method="post" action="/new-claim/%d/estimate" enctype="multipart/form-data" class="space-y-4 rounded-lg bg-white p-6 shadow">`, props.ClaimID)
		p.raw(`<input type="file" name="image" accept="image/*" required class="w-full">`)
		p.raw(`<button type="submit" class="rounded bg-blue-700 px-6 py-2 text-white">Analyse damage</button></form></section>`)
	})
}

type ResultsProps struct {
	ClaimID  int64
	Estimate models.FinalEstimate
	Heatmap  claims.Heatmap
}

// ResultsPage shows the estimate straight after analysis.
func ResultsPage(props ResultsProps) templ.Component {
	return component(func(p *printer) {
		a, e := props.Estimate.Analysis, props.Estimate.Estimate
		p.f(`<section id="results"><h1 class="mb-4 text-3xl font-bold">Analysis for claim #%d</h1>`, props.ClaimID)
		p.component(Banner(BannerProps{
			ID:      "awaiting-approval",
			Tone:    claims.ToneWarning,
			Message: "Your claim is waiting for admin approval.",
		}))
		p.component(analysisSummary(a.IsDamaged, a.DamageConfidence, a.DamageSeverity.SeverityLabel, e.Total))
		p.raw(`<div class="my-6 grid gap-6 md:grid-cols-2">`)
		p.component(plottedImage(a.PlottedImage))
		p.component(Heatmap(props.Heatmap))
		p.raw(`</div>`)

		subtotal := e.Subtotal
		if subtotal == 0 {
			subtotal = claims.Subtotal(e.Total)
		}
		tax := e.Tax
		if tax == 0 {
			tax = e.Total - subtotal
		}
		p.component(lineItemsTable(e.LineItems))
		p.component(totals(totalsProps{
			Subtotal:        subtotal,
			Tax:             tax,
			Total:           e.Total,
			Original:        e.OriginalTotal,
			Deduction:       e.DeductionAmount,
			DeductionReason: e.DeductionReason,
		}))
		p.f(`<div class="mt-6 flex gap-4"><a id="download-report" href="/new-claim/%d/report.pdf" class="rounded bg-blue-600 px-4 py-2 text-white">Download report</a>`, props.ClaimID)
		p.f(`<a href="/claim/%d" class="py-2 text-blue-700 underline">View claim</a></div></section>`, props.ClaimID)
	})
}

func analysisSummary(damaged bool, confidence float64, severity string, total float64) templ.Component {
	return component(func(p *printer) {
		detected := "No"
		if damaged {
			detected = "Yes"
		}
		if severity == "" {
			severity = "N/A"
		}
		p.raw(`<dl id="analysis-summary" class="grid grid-cols-2 gap-4 md:grid-cols-4">`)
		for _, kv := range [][2]string{
			{"Damage detected", detected},
			{"Confidence", fmt.Sprintf("%.1f%%", claims.ConfidencePercent(confidence))},
			{"Severity", severity},
			{"Estimated total", claims.FormatCurrency(total)},
		} {
			p.f(`<div class="rounded-lg bg-white p-4 shadow"><dt class="text-xs text-gray-500">%s</dt><dd class="text-lg font-semibold">%s</dd></div>`, kv[0], kv[1])
		}
		p.raw(`</dl>`)
	})
}

func plottedImage(b64 string) templ.Component {
	if b64 == "" {
		return templ.NopComponent
	}
	return component(func(p *printer) {
		p.f(`<img id="plotted-image" alt="Detected damage" class="rounded-lg shadow" src="data:image/jpeg;base64,%s">`, b64)
	})
}

func lineItemsTable(items []models.LineItem) templ.Component {
	return component(func(p *printer) {
		p.raw(`<table id="line-items" class="w-full bg-white text-sm shadow"><thead><tr class="bg-gray-100 text-left">`)
		p.raw(`<th class="p-2">Part</th><th class="p-2">Damage type</th><th class="p-2">Action</th><th class="p-2 text-right">Amount</th></tr></thead><tbody>`)
		if len(items) == 0 {
			p.raw(`<tr><td colspan="4" class="p-4 text-center text-gray-500">No repairable damage found</td></tr>`)
		}
		for _, it := range items {
			p.f(`<tr class="border-t"><td class="p-2">%s</td><td class="p-2">%s</td><td class="p-2">%s</td><td class="p-2 text-right">%s</td></tr>`,
				it.Part, it.DamageType, it.Action, claims.FormatCurrency(it.Amount))
		}
		p.raw(`</tbody></table>`)
	})
}

type totalsProps struct {
	Subtotal, Tax, Total float64
	Original, Deduction  float64
	DeductionReason      string
}

func totals(t totalsProps) templ.Component {
	return component(func(p *printer) {
		p.raw(`<dl id="totals" class="mt-4 ml-auto max-w-xs space-y-1 text-sm">`)
		if t.Deduction > 0 {
			p.f(`<div class="flex justify-between"><dt>Original estimate</dt><dd>%s</dd></div>`, claims.FormatCurrency(t.Original))
			p.f(`<div class="flex justify-between text-red-700" data-deduction><dt>Deduction</dt><dd>- %s</dd></div>`, claims.FormatCurrency(t.Deduction))
			if t.DeductionReason != "" {
				p.f(`<p class="text-xs text-gray-500">%s</p>`, t.DeductionReason)
			}
		}
		p.f(`<div class="flex justify-between"><dt>Subtotal</dt><dd>%s</dd></div>`, claims.FormatCurrency(t.Subtotal))
		p.f(`<div class="flex justify-between"><dt>Tax (8%%)</dt><dd>%s</dd></div>`, claims.FormatCurrency(t.Tax))
		p.f(`<div class="flex justify-between font-bold"><dt>Total</dt><dd>%s</dd></div></dl>`, claims.FormatCurrency(t.Total))
	})
}

type ClaimDetailProps struct {
	Claim     models.ClaimDetail
	Breakdown claims.Breakdown
	Heatmap   claims.Heatmap
}

// ClaimDetailPage shows a stored claim. The report section appears only once
// the analysis has finished.
func ClaimDetailPage(props ClaimDetailProps) templ.Component {
	return component(func(p *printer) {
		c := props.Claim
		p.f(`<section id="claim-detail"><div class="mb-4 flex items-center justify-between"><h1 class="text-3xl font-bold">Claim #%d</h1>`, c.ID)
		p.component(StatusBadge(c.Status))
		p.raw(`</div>`)

		p.raw(`<dl class="mb-6 grid gap-4 rounded-lg bg-white p-6 text-sm shadow md:grid-cols-3">`)
		for _, kv := range [][2]string{
			{"Vehicle", c.VehicleMakeModel},
			{"Registration", c.VehicleRegistrationNumber},
			{"Incident date", c.DateOfIncident},
			{"Policyholder", c.FirstName + " " + c.LastName},
			{"Insurer", c.InsuranceCompany},
			{"Policy number", c.PolicyNumber},
			{"Filed", c.CreatedAt},
		} {
			p.f(`<div><dt class="text-gray-500">%s</dt><dd class="font-medium">%s</dd></div>`, kv[0], kv[1])
		}
		p.raw(`</dl>`)

		if !claims.ReportReady(c.Status) {
			p.component(Banner(BannerProps{ID: "processing", Tone: claims.ToneWarning, Message: "Your claim is still being processed."}))
			p.raw(`</section>`)
			return
		}

		p.component(Banner(BannerProps{ID: "decision", Tone: claims.StatusTone(c.Status), Message: claims.DecisionMessage(c.Status)}))
		p.f(`<div id="report" class="space-y-6"><div class="flex items-center justify-between"><h2 class="text-xl font-semibold">Analysis and cost estimate</h2>`)
		p.f(`<a href="/claim/%d/report.pdf" class="rounded bg-blue-700 px-4 py-2 text-sm text-white" hx-boost="false">Download PDF report</a></div>`, c.ID)

		if !claims.HasDamage(c) {
			p.component(Banner(BannerProps{ID: "no-damage", Tone: claims.ToneSuccess, Message: "No damage was detected on this vehicle."}))
			p.raw(`</div></section>`)
			return
		}

		if a := c.AnalysisResponse; a != nil {
			p.component(analysisSummary(a.IsDamaged, a.DamageConfidence, a.DamageSeverity.SeverityLabel, c.EstimatedTotal))
			p.raw(`<div class="grid gap-6 md:grid-cols-2">`)
			p.component(plottedImage(a.PlottedImage))
			p.component(Heatmap(props.Heatmap))
			p.raw(`</div>`)
		}
		b := props.Breakdown
		p.component(lineItemsTable(c.LineItems))
		t := totalsProps{Subtotal: b.Subtotal, Tax: b.Tax, Total: b.Final}
		if b.Limited {
			t.Original, t.Deduction = b.Original, b.Deduction
			t.DeductionReason = "Limited claim: repeat claims within a year are paid at 50%."
		}
		p.component(totals(t))
		p.raw(`</div></section>`)
	})
}

// ClaimsListPage lists the signed-in user's claims.
func ClaimsListPage(list []models.ClaimSummary) templ.Component {
	return component(func(p *printer) {
		p.raw(`<section><h1 class="mb-6 text-3xl font-bold">My claims</h1>`)
		if len(list) == 0 {
			p.raw(`<p class="text-gray-600" id="no-claims">You have not filed any claims yet. <a class="text-blue-700" href="/new-claim">File one now</a>.</p></section>`)
			return
		}
		p.component(claimsTable(list, false))
		p.raw(`</section>`)
	})
}

func claimsTable(list []models.ClaimSummary, withUser bool) templ.Component {
	return component(func(p *printer) {
		p.raw(`<table id="claims-table" class="w-full bg-white text-sm shadow"><thead><tr class="bg-gray-100 text-left"><th class="p-2">ID</th>`)
		if withUser {
			p.raw(`<th class="p-2">User</th>`)
		}
		p.raw(`<th class="p-2">Vehicle</th><th class="p-2">Filed</th><th class="p-2">Status</th><th class="p-2 text-right">Estimate</th><th class="p-2"></th></tr></thead><tbody>`)
		for _, c := range list {
			p.f(`<tr class="border-t" data-claim-id="%d"><td class="p-2">#%d</td>`, c.ID, c.ID)
			if withUser {
				p.f(`<td class="p-2">%s<br><span class="text-xs text-gray-500">%s</span></td>`, c.UserName, c.UserEmail)
			}
			p.f(`<td class="p-2">%s <span class="text-xs text-gray-500">%s</span></td><td class="p-2">%s</td><td class="p-2">`,
				c.VehicleMakeModel, c.VehicleRegistrationNumber, c.CreatedAt)
			p.component(StatusBadge(c.Status))
			p.f(`</td><td class="p-2 text-right">%s</td><td class="p-2"><a class="text-blue-700" href="/claim/%d">View</a>`, claims.FormatCurrency(c.EstimatedTotal), c.ID)
			if withUser && !claims.IsDecided(c.Status) {
				p.component(decisionButtons(c.ID))
			}
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
	})
}
