package auth

import "github.com/trezcool/academia/core"

// Portal identifies which role-specific auth endpoints a credential exchange
// goes through.
type Portal int

const (
	PortalStudent Portal = iota
	PortalTeacher
	PortalAdmin
)

// ParsePortal maps a free-form role value to a Portal. Anything that is not
// "student" or "teacher" goes to the admin portal; the backend contract makes
// admin the default branch, not an error.
func ParsePortal(role string) Portal {
	switch core.CleanString(role, true /* lower */) {
	case "student":
		return PortalStudent
	case "teacher":
		return PortalTeacher
	default:
		return PortalAdmin
	}
}

func (p Portal) String() string {
	switch p {
	case PortalStudent:
		return "student"
	case PortalTeacher:
		return "teacher"
	default:
		return "admin"
	}
}

// LoginPath returns the role-specific login endpoint.
func (p Portal) LoginPath() string {
	switch p {
	case PortalStudent:
		return "/auth/student/login"
	case PortalTeacher:
		return "/auth/teacher/login"
	default:
		return "/auth/admin/login"
	}
}

// RegisterPath returns the role-specific registration endpoint.
// There is no admin self-registration; everything but the student portal
// registers as a teacher.
func (p Portal) RegisterPath() string {
	if p == PortalStudent {
		return "/auth/student/register"
	}
	return "/auth/teacher/register"
}
