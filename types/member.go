package types

import "github.com/google/uuid"

// MemberID is the opaque identity of a household member.
type MemberID string

// NewMemberID returns a fresh random member identity.
func NewMemberID() MemberID {
	return MemberID(uuid.NewString())
}

// Role is a member's role within the collective.
type Role string

// Member roles.
const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is a household member participating in distribution.
//
// The engine treats a member purely as an ID; name and contact are carried
// for the caller's convenience.
type Member struct {
	ID    MemberID `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Email string   `json:"email,omitempty" yaml:"email,omitempty"`
	Role  Role     `json:"role,omitempty" yaml:"role,omitempty"`
}

// MemberIDs extracts the ids of the given members, preserving order.
func MemberIDs(members []Member) []MemberID {
	ids := make([]MemberID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	return ids
}
