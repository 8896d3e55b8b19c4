package views

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

type ProfileProps struct {
	User    models.UserDetails
	History []models.ClaimSummary
	Error   string
	Notice  string
}

func ProfilePage(props ProfileProps) templ.Component {
	return component(func(p *printer) {
		u := props.User
		p.raw(`<section id="profile"><h1 class="mb-6 text-3xl font-bold">Profile</h1>`)
		if props.Error != "" {
			p.component(ErrorBanner("profile-error", props.Error))
		}
		if props.Notice != "" {
			p.component(Banner(BannerProps{ID: "profile-notice", Tone: claims.ToneSuccess, Message: props.Notice, Dismissable: true}))
		}

		p.raw(`<div class="mb-8 flex items-center gap-6 rounded-lg bg-white p-6 shadow">`)
		if u.ProfilePictureURL != "" {
			p.f(`<img id="profile-picture" src="%s" alt="Profile picture" class="h-20 w-20 rounded-full object-cover">`, u.ProfilePictureURL)
		} else {
			p.raw(`<div id="profile-picture" class="h-20 w-20 rounded-full bg-gray-200"></div>`)
		}
		p.f(`<div><p class="text-xl font-semibold" data-name>%s</p><p class="text-gray-600" data-email>%s</p>`, u.Name, u.Email)
		p.f(`<p class="text-sm text-gray-500" data-claim-count>%d claims filed</p></div>`, u.ClaimCount())
		p.raw(`<form method="post" action="/profile/picture" enctype="multipart/form-data" class="ml-auto flex items-center gap-2" hx-boost="false">`)
		p.raw(`<input type="file" name="file" accept="image/*" required class="text-sm"><button type="submit" class="rounded bg-blue-700 px-3 py-1 text-sm text-white">Upload</button></form></div>`)

		p.raw(`<h2 class="mb-2 text-xl font-semibold">Claim history</h2>`)
		if len(props.History) == 0 {
			p.raw(`<p class="text-gray-600" id="no-claims">No claims yet.</p></section>`)
			return
		}
		p.component(claimsTable(props.History, false))
		p.raw(`</section>`)
	})
}
