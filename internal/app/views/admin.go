package views

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

type AdminDashboardProps struct {
	Stats  claims.DashboardStats
	Claims []models.ClaimSummary
	Error  string
}

func AdminDashboard(props AdminDashboardProps) templ.Component {
	return component(func(p *printer) {
		p.raw(`<section id="admin-dashboard"><h1 class="mb-6 text-3xl font-bold">Admin dashboard</h1>`)
		if props.Error != "" {
			p.component(ErrorBanner("admin-error", props.Error))
		}

		s := props.Stats
		p.raw(`<div id="key-metrics" class="mb-8 grid grid-cols-2 gap-4 md:grid-cols-4">`)
		for _, m := range []struct {
			id, label string
			value     int
		}{
			{"total", "Total claims", s.Total},
			{"completed", "Completed", s.Completed},
			{"pending", "Pending review", s.Pending},
			{"users", "Unique users", s.UniqueUsers},
		} {
			p.f(`<div class="rounded-lg bg-white p-4 shadow" data-metric="%s"><p class="text-xs text-gray-500">%s</p><p class="text-2xl font-bold">%d</p></div>`, m.id, m.label, m.value)
		}
		p.raw(`</div>`)

		if len(s.PerUser) > 0 {
			p.raw(`<h2 class="mb-2 text-xl font-semibold">Claims per user</h2><ul id="user-stats" class="mb-8 grid gap-2 md:grid-cols-3">`)
			for _, u := range s.PerUser {
				p.f(`<li class="rounded bg-white p-3 shadow"><span class="font-medium">%s</span> <span class="text-xs text-gray-500">%s</span> <span class="float-right font-bold">%d</span></li>`, u.Name, u.Email, u.Count)
			}
			p.raw(`</ul>`)
		}

		p.raw(`<h2 class="mb-2 text-xl font-semibold">All claims</h2>`)
		if len(props.Claims) == 0 {
			p.raw(`<p class="text-gray-600">No claims have been filed.</p></section>`)
			return
		}
		p.component(claimsTable(props.Claims, true))
		p.raw(`</section>`)
	})
}

// decisionButtons post an approve or reject decision for an undecided claim.
func decisionButtons(id int64) templ.Component {
	return component(func(p *printer) {
		for _, d := range []struct{ status, label, cls string }{
			{claims.StatusApproved, "Accept", "bg-green-600"},
			{claims.StatusRejected, "Reject", "bg-red-600"},
		} {
			p.f(`<form method="post" action="/admin/claims/%d/status" class="ml-2 inline" hx-confirm="Mark this claim as %s?">`, id, d.status)
			p.f(`<input type="hidden" name="status" value="%s"><button type="submit" class="%s" data-action="%s">%s</button></form>`,
				d.status, classes("rounded px-2 py-1 text-xs text-white", d.cls), d.status, d.label)
		}
	})
}
