package models

// Session is the client's record of the authenticated identity.
type Session struct {
	UserID        string
	DisplayName   string
	Email         string
	CreditBalance int
	Role          Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
