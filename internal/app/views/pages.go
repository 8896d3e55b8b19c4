package views

import "github.com/a-h/templ"

func LandingPage() templ.Component {
	return component(func(p *printer) {
		p.raw(`<section class="py-16 text-center">`)
		p.raw(`<h1 class="mb-4 text-4xl font-bold">Vehicle damage claims, estimated in minutes</h1>`)
		p.raw(`<p class="mb-8 text-lg text-gray-600">Upload a photo of the damage and get an AI estimate of the repair cost, reviewed by your insurer.</p>`)
		p.raw(`<div class="flex justify-center gap-4">`)
		p.raw(`<a href="/register" class="rounded bg-blue-700 px-6 py-3 text-white">Get started</a>`)
		p.raw(`<a href="/login" class="rounded border px-6 py-3">Sign in</a></div></section>`)
		p.raw(`<section class="grid gap-6 md:grid-cols-3">`)
		for _, step := range []struct{ title, body string }{
			{"1. Describe the incident", "Tell us about the vehicle, the policy and what happened."},
			{"2. Upload a photo", "Our model detects damaged parts and how severe the damage is."},
			{"3. Get your estimate", "See a line-by-line cost breakdown and download a PDF report."},
		} {
			p.f(`<div class="rounded-lg bg-white p-6 shadow"><h2 class="mb-2 font-semibold">%s</h2><p class="text-sm text-gray-600">%s</p></div>`, step.title, step.body)
		}
		p.raw(`</section>`)
	})
}

func AboutPage() templ.Component {
	return component(func(p *printer) {
		p.raw(`<section class="prose max-w-none"><h1 class="mb-4 text-3xl font-bold">About</h1>`)
		p.raw(`<p class="mb-4">AI Claims helps policyholders file vehicle damage claims without waiting for a surveyor. A detection model locates damage in your photo and estimates its severity, and a pricing engine turns that into a repair estimate.</p>`)
		p.raw(`<p>Every estimate is reviewed by an administrator before the claim is approved or rejected. Repeat claims within a year are limited.</p></section>`)
	})
}

func ContactPage() templ.Component {
	return component(func(p *printer) {
		p.raw(`<section><h1 class="mb-4 text-3xl font-bold">Contact</h1>`)
		p.raw(`<p class="mb-2">Questions about a claim? Reach our support team.</p>`)
		p.raw(`<ul class="text-gray-700"><li>Email: <a class="text-blue-700" href="mailto:support@aiclaims.example">support@aiclaims.example</a></li>`)
		p.raw(`<li>Phone: +91 80 4000 0000</li><li>Hours: Monday to Saturday, 9:00 to 18:00 IST</li></ul></section>`)
	})
}
