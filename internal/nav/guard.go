package nav

// LoginRoute is where denied navigations are redirected.
const LoginRoute = "/login"

// Decision is the outcome of an access check.
type Decision struct {
	Allowed  bool
	Redirect string // set when !Allowed
}

// SessionState is the read-only slice of the session the guard consults.
type SessionState interface {
	IsAuthenticated() bool
}

// Guard gates navigation to protected views. It is a pure predicate: the
// redirect itself is performed by the caller (the TUI router).
type Guard struct {
	Session SessionState
}

func (g Guard) Check() Decision {
	if g.Session != nil && g.Session.IsAuthenticated() {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LoginRoute}
}
