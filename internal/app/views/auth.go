package views

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
)

type LoginForm struct {
	Email  string
	Error  string
	Notice string
}

type RegisterForm struct {
	Name  string
	Email string
	Error string
}

func LoginPage(form LoginForm) templ.Component {
	return component(func(p *printer) {
		p.raw(`<section class="mx-auto max-w-md rounded-lg bg-white p-8 shadow"><h1 class="mb-6 text-2xl font-bold">Sign in</h1>`)
		p.component(LoginFormFragment(form))
		p.raw(`<p class="mt-4 text-sm">No account? <a href="/register" class="text-blue-700">Register</a></p></section>`)
	})
}

// LoginFormFragment is swapped in place on failed HTMX submissions.
func LoginFormFragment(form LoginForm) templ.Component {
	return component(func(p *printer) {
		p.raw(`<form id="login-form" method="post" action="/login" hx-post="/login" hx-swap="outerHTML" class="space-y-4">`)
		if form.Error != "" {
			p.component(ErrorBanner("login-error", form.Error))
		}
		if form.Notice != "" {
			p.component(Banner(BannerProps{ID: "login-notice", Tone: claims.ToneSuccess, Message: form.Notice}))
		}
		p.component(input("email", "Email", "email", form.Email, true))
		p.component(input("password", "Password", "password", "", true))
		p.raw(`<button type="submit" class="w-full rounded bg-blue-700 py-2 text-white">Sign in</button></form>`)
	})
}

func RegisterPage(form RegisterForm) templ.Component {
	return component(func(p *printer) {
		p.raw(`<section class="mx-auto max-w-md rounded-lg bg-white p-8 shadow"><h1 class="mb-6 text-2xl font-bold">Create account</h1>`)
		p.component(RegisterFormFragment(form))
		p.raw(`<p class="mt-4 text-sm">Already registered? <a href="/login" class="text-blue-700">Sign in</a></p></section>`)
	})
}

func RegisterFormFragment(form RegisterForm) templ.Component {
	return component(func(p *printer) {
		p.raw(`<form id="register-form" method="post" action="/register" hx-post="/register" hx-swap="outerHTML" class="space-y-4">`)
		if form.Error != "" {
			p.component(ErrorBanner("register-error", form.Error))
		}
		p.component(input("name", "Full name", "text", form.Name, true))
		p.component(input("email", "Email", "email", form.Email, true))
		p.component(input("password", "Password", "password", "", true))
		p.raw(`<button type="submit" class="w-full rounded bg-blue-700 py-2 text-white">Register</button></form>`)
	})
}

func input(name, label, typ, value string, required bool) templ.Component {
	return component(func(p *printer) {
		p.f(`<label class="block text-sm font-medium" for="%s">%s`, name, label)
		p.f(`<input id="%s" name="%s" type="%s" value="%s" class="mt-1 w-full rounded border px-3 py-2"`, name, name, typ, value)
		if required {
			p.raw(` required`)
		}
		p.raw(`></label>`)
	})
}
