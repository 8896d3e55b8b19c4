package views

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
)

type BannerProps struct {
	ID          string
	Tone        claims.Tone
	Title       string
	Message     string
	Dismissable bool
	Class       string
}

var toneClasses = map[claims.Tone]string{
	claims.ToneSuccess: "bg-green-50 border-green-300 text-green-800",
	claims.ToneDanger:  "bg-red-50 border-red-300 text-red-800",
	claims.ToneWarning: "bg-yellow-50 border-yellow-300 text-yellow-800",
}

// Banner is a page-local alert.
func Banner(props BannerProps) templ.Component {
	return component(func(p *printer) {
		cls := classes("rounded-lg border px-4 py-3 mb-4", toneClasses[props.Tone], props.Class)
		p.f(`<div role="alert" class="%s" data-tone="%s"`, cls, string(props.Tone))
		if props.ID != "" {
			p.f(` id="%s"`, props.ID)
		}
		p.raw(`>`)
		if props.Title != "" {
			p.f(`<p class="font-semibold">%s</p>`, props.Title)
		}
		if props.Message != "" {
			p.f(`<p class="text-sm">%s</p>`, props.Message)
		}
		if props.Dismissable {
			p.raw(`<button type="button" class="text-xs underline" onclick="this.parentElement.remove()">Dismiss</button>`)
		}
		p.raw(`</div>`)
	})
}

// ErrorBanner is the danger banner used for failed form submissions.
func ErrorBanner(id, message string) templ.Component {
	return Banner(BannerProps{ID: id, Tone: claims.ToneDanger, Message: message, Dismissable: true})
}

var badgeClasses = map[claims.Tone]string{
	claims.ToneSuccess: "bg-green-100 text-green-800",
	claims.ToneDanger:  "bg-red-100 text-red-800",
	claims.ToneWarning: "bg-yellow-100 text-yellow-800",
}

// StatusBadge renders a claim status as a coloured pill.
func StatusBadge(status string) templ.Component {
	return component(func(p *printer) {
		tone := claims.StatusTone(status)
		cls := classes("inline-flex rounded-full px-2 py-0.5 text-xs font-medium", badgeClasses[tone])
		p.f(`<span class="%s" data-status="%s">%s</span>`, cls, status, claims.Label(status))
	})
}
