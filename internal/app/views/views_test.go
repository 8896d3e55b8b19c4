package views

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err, "failed to read rendered HTML")
	return doc
}

func scriptSources(t *testing.T) []string {
	t.Helper()
	for _, directive := range strings.Split(middleware.ContentSecurityPolicy, ";") {
		fields := strings.Fields(directive)
		if len(fields) > 0 && fields[0] == "script-src" {
			return fields[1:]
		}
	}
	t.Fatal("policy has no script-src directive")
	return nil
}

func TestLayout_ScriptsAllowedByPolicy(t *testing.T) {
	allowed := scriptSources(t)
	doc := render(t, Layout(models.LayoutTempl{Title: "Home", Nav: models.OfflineNav, Content: LandingPage()}))

	scripts := doc.Find("script[src]")
	require.NotZero(t, scripts.Length())
	scripts.Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		u, err := url.Parse(src)
		require.NoError(t, err)
		assert.Contains(t, allowed, u.Scheme+"://"+u.Host, "script %s is blocked by the policy", src)
	})
}

func TestLayout(t *testing.T) {
	t.Run("signed out shows offline navigation", func(t *testing.T) {
		doc := render(t, Layout(models.LayoutTempl{
			Title:     "Home",
			Nav:       models.OfflineNav,
			ActiveNav: "Home",
			Content:   LandingPage(),
		}))

		assert.Equal(t, "Home", doc.Find("title").Text())
		assert.Equal(t, len(models.OfflineNav.Items), doc.Find("nav li a").Length())
		assert.Zero(t, doc.Find(`form[action="/logout"]`).Length())
		assert.Contains(t, doc.Find("main h1").Text(), "Vehicle damage claims")
	})

	t.Run("signed in shows user and logout", func(t *testing.T) {
		doc := render(t, Layout(models.LayoutTempl{
			Title: "Claims",
			Nav:   models.UserNav,
			User:  &models.User{Email: "driver@example.com"},
		}))

		assert.Equal(t, "driver@example.com", doc.Find("[data-user]").Text())
		assert.Equal(t, 1, doc.Find(`form[action="/logout"]`).Length())
	})
}

func TestBanner_EscapesContent(t *testing.T) {
	doc := render(t, ErrorBanner("login-error", `<script>alert("x")</script>`))

	assert.Zero(t, doc.Find("script").Length())
	assert.Contains(t, doc.Find("#login-error").Text(), `<script>`)
	tone, _ := doc.Find("#login-error").Attr("data-tone")
	assert.Equal(t, "danger", tone)
}

func TestStatusBadge(t *testing.T) {
	doc := render(t, StatusBadge(claims.StatusFirstClaimAnalyzed))
	badge := doc.Find("span")

	assert.Equal(t, "Waiting for Approval", badge.Text())
	cls, _ := badge.Attr("class")
	assert.Contains(t, cls, "bg-yellow-100")
}

func TestLoginFormFragment(t *testing.T) {
	doc := render(t, LoginFormFragment(LoginForm{Email: "a@b.c", Error: "Invalid email or password"}))

	email, _ := doc.Find(`input[name="email"]`).Attr("value")
	assert.Equal(t, "a@b.c", email)
	pw, _ := doc.Find(`input[name="password"]`).Attr("value")
	assert.Empty(t, pw)
	assert.Contains(t, doc.Find("#login-error").Text(), "Invalid email or password")
}

func TestNewClaimPage(t *testing.T) {
	t.Run("first claim has no warning", func(t *testing.T) {
		doc := render(t, NewClaimPage(ClaimFormProps{Warning: claims.WarningFor(0)}))
		assert.Zero(t, doc.Find("#claim-warning").Length())
		assert.Equal(t, 1, doc.Find(`input[name="vehicleRegistrationNumber"]`).Length())
		assert.Equal(t, 1, doc.Find(`input[name="hasZeroDepreciationCover"]`).Length())
	})

	t.Run("repeat claimant sees danger banner", func(t *testing.T) {
		doc := render(t, NewClaimPage(ClaimFormProps{Warning: claims.WarningFor(2)}))
		tone, _ := doc.Find("#claim-warning").Attr("data-tone")
		assert.Equal(t, "danger", tone)
		assert.Contains(t, doc.Text(), "claim #3")
	})

	t.Run("keeps submitted values", func(t *testing.T) {
		doc := render(t, NewClaimPage(ClaimFormProps{Form: models.ClaimRequest{YearOfManufacture: 2019, NeedsPickup: true}}))
		year, _ := doc.Find(`input[name="yearOfManufacture"]`).Attr("value")
		assert.Equal(t, "2019", year)
		_, checked := doc.Find(`input[name="needsPickup"]`).Attr("checked")
		assert.True(t, checked)
	})
}

func TestResultsPage(t *testing.T) {
	fe := models.FinalEstimate{
		Analysis: models.Analysis{IsDamaged: true, DamageConfidence: 0.9, PlottedImage: "abcd"},
		Estimate: models.Estimate{
			LineItems:       []models.LineItem{{Part: "Front Bumper", Amount: 1000}},
			Total:           1080,
			OriginalTotal:   2160,
			DeductionAmount: 1080,
		},
	}
	doc := render(t, ResultsPage(ResultsProps{ClaimID: 9, Estimate: fe, Heatmap: claims.HeatmapFor(fe.Estimate.LineItems)}))

	assert.Equal(t, 1, doc.Find("#awaiting-approval").Length())
	assert.Equal(t, 1, doc.Find("[data-deduction]").Length())
	assert.Equal(t, 1, doc.Find("#line-items tbody tr").Length())
	src, _ := doc.Find("#plotted-image").Attr("src")
	assert.Equal(t, "data:image/jpeg;base64,abcd", src)
	damaged, _ := doc.Find(`[data-region="bumper"]`).Attr("data-damaged")
	assert.Equal(t, "true", damaged)
	assert.Contains(t, doc.Find("#totals").Text(), "Rs. 1000.00")
	href, _ := doc.Find("#download-report").Attr("href")
	assert.Equal(t, "/new-claim/9/report.pdf", href)
}

func TestClaimDetailPage(t *testing.T) {
	t.Run("pending claim hides report", func(t *testing.T) {
		doc := render(t, ClaimDetailPage(ClaimDetailProps{Claim: models.ClaimDetail{ID: 1, Status: claims.StatusPending}}))
		assert.Zero(t, doc.Find("#report").Length())
		assert.Equal(t, 1, doc.Find("#processing").Length())
	})

	t.Run("limited claim shows deduction", func(t *testing.T) {
		c := models.ClaimDetail{
			ID:               2,
			Status:           claims.StatusLimitedClaimAnalyzed,
			EstimatedTotal:   500,
			LineItems:        []models.LineItem{{Part: "Door", Amount: 463}},
			AnalysisResponse: &models.Analysis{IsDamaged: true},
		}
		doc := render(t, ClaimDetailPage(ClaimDetailProps{
			Claim:     c,
			Breakdown: claims.BreakdownFor(c.Status, c.EstimatedTotal),
			Heatmap:   claims.HeatmapFor(c.LineItems),
		}))

		href, _ := doc.Find(`#report a`).Attr("href")
		assert.Equal(t, "/claim/2/report.pdf", href)
		assert.Contains(t, doc.Find("#totals").Text(), "Rs. 1000.00")
		assert.Contains(t, doc.Find("[data-deduction]").Text(), "Rs. 500.00")
	})

	t.Run("approved claim without damage", func(t *testing.T) {
		doc := render(t, ClaimDetailPage(ClaimDetailProps{Claim: models.ClaimDetail{ID: 3, Status: claims.StatusApproved}}))
		tone, _ := doc.Find("#decision").Attr("data-tone")
		assert.Equal(t, "success", tone)
		assert.Equal(t, 1, doc.Find("#no-damage").Length())
	})
}

func TestAdminDashboard(t *testing.T) {
	all := []models.ClaimSummary{
		{ID: 1, Status: claims.StatusApproved, UserName: "Asha", UserEmail: "asha@example.com"},
		{ID: 2, Status: claims.StatusFirstClaimAnalyzed, UserName: "Ravi", UserEmail: "ravi@example.com"},
	}
	doc := render(t, AdminDashboard(AdminDashboardProps{Stats: claims.Summarise(all), Claims: all}))

	assert.Equal(t, "2", doc.Find(`[data-metric="total"] p.text-2xl`).Text())
	assert.Equal(t, "1", doc.Find(`[data-metric="pending"] p.text-2xl`).Text())
	assert.Zero(t, doc.Find(`tr[data-claim-id="1"] form`).Length(), "decided claims have no actions")
	assert.Equal(t, 2, doc.Find(`tr[data-claim-id="2"] form`).Length())
	action, _ := doc.Find(`tr[data-claim-id="2"] form`).First().Attr("action")
	assert.Equal(t, "/admin/claims/2/status", action)
}

func TestProfilePage(t *testing.T) {
	doc := render(t, ProfilePage(ProfileProps{
		User:    models.UserDetails{Name: "Asha", Email: "asha@example.com", ClaimIDs: []int64{1, 2}},
		History: []models.ClaimSummary{{ID: 1}, {ID: 2}},
	}))

	assert.Equal(t, "Asha", doc.Find("[data-name]").Text())
	assert.Contains(t, doc.Find("[data-claim-count]").Text(), "2 claims")
	assert.Equal(t, 2, doc.Find("#claims-table tbody tr").Length())
	assert.Equal(t, 1, doc.Find(`input[name="file"]`).Length())
}
