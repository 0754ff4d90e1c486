package nav

import "testing"

type fakeSession bool

func (f fakeSession) IsAuthenticated() bool { return bool(f) }

func TestGuardAllowsAuthenticated(t *testing.T) {
	g := Guard{Session: fakeSession(true)}
	d := g.Check()
	if !d.Allowed {
		t.Fatalf("authenticated session was denied")
	}
	if d.Redirect != "" {
		t.Fatalf("allowed decision carries redirect %q", d.Redirect)
	}
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	g := Guard{Session: fakeSession(false)}
	d := g.Check()
	if d.Allowed {
		t.Fatalf("anonymous session was allowed")
	}
	if d.Redirect != LoginRoute {
		t.Fatalf("Redirect = %q, want %q", d.Redirect, LoginRoute)
	}
}

func TestGuardNilSessionDenies(t *testing.T) {
	d := Guard{}.Check()
	if d.Allowed {
		t.Fatalf("nil session was allowed")
	}
}
