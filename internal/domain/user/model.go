package user

import "slices"

// Role is a member's position in the club.
type Role string

const (
	RoleFacultyCoordinator Role = "Faculty Coordinator"
	RolePresident          Role = "President"
	RoleVicePresident      Role = "Vice President"
	RoleSecretary          Role = "Secretary"
	RoleTechnicalLead      Role = "Technical Lead"
	RoleLead               Role = "Lead"
	RoleCoLead             Role = "Co-Lead"
	RoleCoreMember         Role = "Core Member"
	RoleUnset              Role = "Yet to be set"
)

// Team is the working group a member belongs to.
type Team string

const (
	TeamAI        Team = "AI"
	TeamApp       Team = "App"
	TeamBackend   Team = "Backend"
	TeamInfoSec   Team = "Info Sec"
	TeamIOT       Team = "IOT"
	TeamWeb       Team = "Web"
	TeamDesign    Team = "Design"
	TeamMedia     Team = "Media"
	TeamEvent     Team = "Event"
	TeamIntellexa Team = "Intellexa"
	TeamUnset     Team = "Yet to be set"
)

// Roles lists every assignable role in display order.
var Roles = []Role{
	RoleFacultyCoordinator,
	RolePresident,
	RoleVicePresident,
	RoleSecretary,
	RoleTechnicalLead,
	RoleLead,
	RoleCoLead,
	RoleCoreMember,
	RoleUnset,
}

// Teams lists every assignable team in display order.
var Teams = []Team{
	TeamAI,
	TeamApp,
	TeamBackend,
	TeamInfoSec,
	TeamIOT,
	TeamWeb,
	TeamDesign,
	TeamMedia,
	TeamEvent,
	TeamIntellexa,
	TeamUnset,
}

func (r Role) Valid() bool { return slices.Contains(Roles, r) }

func (t Team) Valid() bool { return slices.Contains(Teams, t) }

// User is a registered club member.
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Team       Team   `json:"team"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Photo      string `json:"profilePhoto,omitempty"`
}

// List is the payload of GET /users.
type List struct {
	Users []User `json:"users"`
}

// Find returns the user with the given ID.
func (l *List) Find(id string) (User, bool) {
	if l == nil {
		return User{}, false
	}
	for _, u := range l.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Identity is the authenticated caller as returned by POST /login. It is sent
// JSON-encoded in the X-User header of identity-scoped requests.
type Identity struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    Role   `json:"role"`
	Team    Team   `json:"team"`
	Passkey string `json:"passkey,omitempty"`
}

// IsZero reports whether no caller is signed in.
func (i Identity) IsZero() bool {
	return i.ID == "" && i.Name == "" && i.Email == ""
}

// CanAccess checks a dashboard view for this caller.
func (i Identity) CanAccess(view View) error {
	return CanAccess(!i.IsZero(), i.Role, i.Team, view)
}

// IsAdmin reports whether the caller administers events and members.
func (i Identity) IsAdmin() bool {
	return !i.IsZero() && IsAdmin(i.Role, i.Team)
}
