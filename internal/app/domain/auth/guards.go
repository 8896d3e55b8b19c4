package auth

// Guard is a navigation-time policy over session state.
type Guard int

const (
	// PublicOnly admits signed-out visitors and sends signed-in ones to their home area.
	PublicOnly Guard = iota
	// UserOnly admits non-admin users.
	UserOnly
	// AdminOnly admits administrators.
	AdminOnly
	// AnyAuthenticated admits any signed-in user.
	AnyAuthenticated
)

func (g Guard) String() string {
	switch g {
	case PublicOnly:
		return "PublicOnly"
	case UserOnly:
		return "UserOnly"
	case AdminOnly:
		return "AdminOnly"
	case AnyAuthenticated:
		return "AnyAuthenticated"
	default:
		return "Unknown"
	}
}

// Destinations are the redirect targets guards send navigations to.
type Destinations struct {
	Login     string
	UserHome  string
	AdminHome string
}

var DefaultDestinations = Destinations{
	Login:     "/login",
	UserHome:  "/new-claim",
	AdminHome: "/admin",
}

type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// Evaluate decides a navigation. Roles are mutually exclusive, so no case needs
// to consider a user that is both.
func (g Guard) Evaluate(st State, dest Destinations) Decision {
	switch g {
	case PublicOnly:
		if !st.Authenticated {
			return allow()
		}
		if st.Admin {
			return redirect(dest.AdminHome)
		}
		return redirect(dest.UserHome)
	case UserOnly:
		if st.Authenticated && !st.Admin {
			return allow()
		}
		return redirect(dest.Login)
	case AdminOnly:
		if st.Authenticated && st.Admin {
			return allow()
		}
		return redirect(dest.UserHome)
	case AnyAuthenticated:
		if st.Authenticated {
			return allow()
		}
		return redirect(dest.Login)
	default:
		return redirect(dest.Login)
	}
}
