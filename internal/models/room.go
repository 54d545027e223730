package models

// Role is a member's role within a room.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is one user's membership in a room.
type Member struct {
	// UserID references the User. Unique within a room.
	UserID string

	// DisplayName is denormalized from the user for display.
	DisplayName string

	Role Role

	// JoinedAt is the Unix timestamp when the user joined.
	JoinedAt int64
}

// Room represents a shared household.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	Name        string
	Description string

	// InviteCode lets other users join the room.
	InviteCode string

	// CreatedBy is the user ID of the founder.
	CreatedBy string

	// Members are ordered by join time. The order drives deterministic
	// iteration in balances and rotation.
	Members []Member

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}

// MemberIDs returns the member user IDs in room order.
func (r *Room) MemberIDs() []string {
	ids := make([]string, len(r.Members))
	for i, m := range r.Members {
		ids[i] = m.UserID
	}
	return ids
}

// Member returns the membership for userID, if any.
func (r *Room) Member(userID string) (Member, bool) {
	for _, m := range r.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// IsAdmin reports whether userID is an admin of the room.
func (r *Room) IsAdmin(userID string) bool {
	m, ok := r.Member(userID)
	return ok && m.Role == RoleAdmin
}
