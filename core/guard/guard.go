package guard

// Routes redirected to by the guard.
const (
	RouteLogin        = "/login"
	RouteUnauthorized = "/unauthorized"
)

// State of a guarded view with respect to the current session.
type State int

const (
	// StatePending: session bootstrap has not resolved; render a placeholder.
	StatePending State = iota
	// StateDenied: no user is logged in; redirect to the login route.
	StateDenied
	// StateForbidden: a role is required and the user does not hold it;
	// redirect to the unauthorized route.
	StateForbidden
	// StateAllowed: render the protected content.
	StateAllowed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDenied:
		return "denied"
	case StateForbidden:
		return "forbidden"
	case StateAllowed:
		return "allowed"
	}
	return "unknown"
}

// RolePredicate reports whether the current user holds any of the given roles.
type RolePredicate func(roles ...string) bool

// Navigator is the redirect sink driven by a Guard.
type Navigator interface {
	NavigateTo(route string)
}

// Evaluate is the pure state decision: no side effects, re-runnable on every
// dependency change.
func Evaluate(loading, authenticated bool, required []string, hasRole RolePredicate) State {
	if loading {
		return StatePending
	}
	if !authenticated {
		return StateDenied
	}
	if len(required) > 0 && !hasRole(required...) {
		return StateForbidden
	}
	return StateAllowed
}

// Guard gates a protected view behind authentication and, optionally, role
// membership. Redirects fire at most once per state entry: re-evaluating while
// the state is unchanged never re-fires.
type Guard struct {
	nav      Navigator
	required []string

	last    State
	entered bool
}

func New(nav Navigator, requiredRoles ...string) *Guard {
	return &Guard{nav: nav, required: requiredRoles}
}

// Reevaluate recomputes the state from the current dependency values and
// applies the redirect side effect on state entry.
func (g *Guard) Reevaluate(loading, authenticated bool, hasRole RolePredicate) State {
	state := Evaluate(loading, authenticated, g.required, hasRole)
	if g.entered && state == g.last {
		return state
	}
	g.entered = true
	g.last = state

	switch state {
	case StateDenied:
		g.nav.NavigateTo(RouteLogin)
	case StateForbidden:
		g.nav.NavigateTo(RouteUnauthorized)
	}
	return state
}

// State returns the last evaluated state.
func (g *Guard) State() State {
	return g.last
}
