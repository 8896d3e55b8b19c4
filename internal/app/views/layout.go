package views

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// Layout wraps page content with the document shell and navigation.
func Layout(data models.LayoutTempl) templ.Component {
	return component(func(p *printer) {
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.f(`<title>%s</title>`, data.Title)
		p.raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		p.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		p.raw(`</head><body class="min-h-screen bg-gray-50 text-gray-900" hx-boost="true">`)
		p.component(Navbar(data))
		p.raw(`<main id="content" class="mx-auto max-w-6xl px-4 py-8">`)
		p.component(data.Content)
		p.raw(`</main></body></html>`)
	})
}

func Navbar(data models.LayoutTempl) templ.Component {
	return component(func(p *printer) {
		p.raw(`<nav class="border-b bg-white"><div class="mx-auto flex max-w-6xl items-center justify-between px-4 py-3">`)
		p.raw(`<a href="/" class="text-lg font-bold text-blue-700">AI Claims</a><ul class="flex items-center gap-4">`)
		for _, item := range data.Nav.Items {
			cls := "text-sm text-gray-600 hover:text-blue-700"
			if item.Name == data.ActiveNav {
				cls = classes(cls, "font-semibold text-blue-700")
			}
			p.f(`<li><a href="%s" class="%s">%s</a></li>`, item.URL, cls, item.Name)
		}
		if data.User != nil {
			p.f(`<li class="text-xs text-gray-500" data-user>%s</li>`, data.User.Email)
			p.raw(`<li><form method="post" action="/logout"><button type="submit" class="text-sm text-red-600">Logout</button></form></li>`)
		}
		p.raw(`</ul></div></nav>`)
	})
}

// ErrorPage is shown when a page cannot load its data.
func ErrorPage(title, message string) templ.Component {
	return component(func(p *printer) {
		p.f(`<section class="py-16 text-center"><h1 class="mb-4 text-2xl font-bold">%s</h1>`, title)
		p.component(ErrorBanner("page-error", message))
		p.raw(`<a href="/" class="text-blue-700 underline">Back to home</a></section>`)
	})
}
