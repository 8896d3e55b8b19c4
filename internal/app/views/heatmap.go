package views

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
)

var heatmapShapes = map[claims.Region]string{
	claims.RegionWindscreen: `<path d="M70 45 L130 45 L140 70 L60 70 Z"`,
	claims.RegionBonnet:     `<rect x="60" y="72" width="80" height="40" rx="6"`,
	claims.RegionBumper:     `<rect x="55" y="200" width="90" height="14" rx="4"`,
	claims.RegionDoor:       `<rect x="50" y="118" width="100" height="76" rx="4"`,
}

// Heatmap draws a top-down car with damaged regions highlighted.
func Heatmap(h claims.Heatmap) templ.Component {
	return component(func(p *printer) {
		p.raw(`<svg id="damage-heatmap" viewBox="0 0 200 230" class="h-64 w-auto" role="img" aria-label="Damage heatmap">`)
		p.raw(`<rect x="45" y="20" width="110" height="200" rx="30" fill="#e5e7eb" stroke="#6b7280"/>`)
		for _, r := range claims.Regions {
			fill := "#d1d5db"
			if h.Damaged(r) {
				fill = "#ef4444"
			}
			p.raw(heatmapShapes[r])
			p.f(` fill="%s" data-region="%s" data-damaged="%t"/>`, fill, string(r), h.Damaged(r))
		}
		p.raw(`</svg>`)
	})
}
