package session

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

var AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

// User is the authenticated identity held in memory and mirrored to durable
// storage. Its shape follows the backend's auth response.
type User struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Email     string   `json:"email"`
	Avatar    string   `json:"avatar,omitempty"` // opaque reference, may be empty
	Roles     []string `json:"role"`
}

// HasAnyRole reports whether the user's role set intersects the given set.
// An empty input never matches.
func (u User) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range u.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.HasAnyRole(RoleAdmin)
}

func (u User) IsTeacher() bool {
	return u.HasAnyRole(RoleTeacher)
}

func (u User) IsStudent() bool {
	return u.HasAnyRole(RoleStudent)
}

// UserPatch defines the fields a profile update may change.
// nil fields are left untouched; the patch is merged, never a replacement.
type UserPatch struct {
	Name      *string  `json:"name,omitempty"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Email     *string  `json:"email,omitempty"`
	Avatar    *string  `json:"avatar,omitempty"`
	Roles     []string `json:"role,omitempty"`
}

func mergeUser(usr User, patch UserPatch) User {
	if patch.Name != nil {
		usr.Name = *patch.Name
	}
	if patch.FirstName != nil {
		usr.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		usr.LastName = *patch.LastName
	}
	if patch.Email != nil {
		usr.Email = *patch.Email
	}
	if patch.Avatar != nil {
		usr.Avatar = *patch.Avatar
	}
	if patch.Roles != nil {
		usr.Roles = patch.Roles
	}
	return usr
}
