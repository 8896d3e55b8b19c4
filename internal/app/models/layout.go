package models

import "github.com/a-h/templ"

type User struct {
	Email   string
	IsAdmin bool
}

type NavItem struct {
	Name string
	URL  string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
}

var UserNav = Navigation{
	Items: []NavItem{
		{Name: "New Claim", URL: "/new-claim"},
		{Name: "My Claims", URL: "/claims"},
		{Name: "Profile", URL: "/profile"},
		{Name: "About", URL: "/about"},
	},
}

var AdminNav = Navigation{
	Items: []NavItem{
		{Name: "Dashboard", URL: "/admin"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Home", URL: "/"},
		{Name: "Contact", URL: "/contact"},
		{Name: "Login", URL: "/login"},
		{Name: "Register", URL: "/register"},
	},
}
