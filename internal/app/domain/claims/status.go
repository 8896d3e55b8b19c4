package claims

import "strings"

// Statuses the backend moves a claim through.
const (
	StatusPending              = "PENDING"
	StatusAnalysisComplete     = "ANALYSIS_COMPLETE"
	StatusFirstClaimAnalyzed   = "FIRST_CLAIM_ANALYZED"
	StatusLimitedClaimAnalyzed = "LIMITED_CLAIM_ANALYZED"
	StatusApproved             = "CLAIM_APPROVED"
	StatusRejected             = "CLAIM_REJECTED"
)

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
)

// Label is the human text for a status. Matching is by substring.
func Label(status string) string {
	switch {
	case strings.Contains(status, "APPROVED"):
		return "Approved"
	case strings.Contains(status, "REJECTED"):
		return "Rejected"
	case strings.Contains(status, "ANALYZED"):
		return "Waiting for Approval"
	case strings.Contains(status, "PENDING"):
		return "Processing"
	default:
		return strings.ReplaceAll(status, "_", " ")
	}
}

func StatusTone(status string) Tone {
	switch {
	case strings.Contains(status, "APPROVED"):
		return ToneSuccess
	case strings.Contains(status, "REJECTED"):
		return ToneDanger
	default:
		return ToneWarning
	}
}

// IsDecided reports whether an administrator already approved or rejected the claim.
func IsDecided(status string) bool {
	return strings.Contains(status, "APPROVED") || strings.Contains(status, "REJECTED")
}

// IsLimited reports whether the backend capped the payout for a repeat claimant.
func IsLimited(status string) bool {
	return strings.Contains(status, "LIMITED")
}

// ReportReady reports whether the claim has an analysis worth showing.
func ReportReady(status string) bool {
	switch status {
	case StatusAnalysisComplete, StatusFirstClaimAnalyzed, StatusLimitedClaimAnalyzed,
		StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DecisionMessage is the banner text on the claim detail page.
func DecisionMessage(status string) string {
	switch status {
	case StatusApproved:
		return "Claim approved. Our team has verified your report. Payment is processing."
	case StatusRejected:
		return "Claim rejected. Please contact support for details."
	}
	if IsDecided(status) {
		return Label(status)
	}
	return "AI analysis complete. Please wait for admin verification for final approval."
}

// ValidDecision reports whether status is one an administrator may set.
func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
