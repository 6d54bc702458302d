package table

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/vidgen/internal/client/models"
)

const (
	All      = "all"
	Active   = "active"
	Inactive = "inactive"
)

var validate = validator.New()

// UserFilter is the admin users predicate set. All three parts are ANDed.
// Empty Role or Status means all.
type UserFilter struct {
	Search string
	Role   string `validate:"omitempty,oneof=all admin user"`
	Status string `validate:"omitempty,oneof=all active inactive"`
}

func (f UserFilter) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	return nil
}

// Match reports whether u satisfies the search text (case-insensitive
// substring of first name, last name or email), role and status.
func (f UserFilter) Match(u models.User) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(u.FirstName), q) &&
			!strings.Contains(strings.ToLower(u.LastName), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) {
			return false
		}
	}
	if f.Role != "" && f.Role != All && string(u.Role) != f.Role {
		return false
	}
	switch f.Status {
	case Active:
		return u.IsActive
	case Inactive:
		return !u.IsActive
	}
	return true
}

func FilterUsers(users []models.User, f UserFilter) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

// UsersView filters the full collection, then sorts and paginates the result.
type UsersView struct {
	*Table[models.User]
	all    []models.User
	filter UserFilter
}

func NewUsersView(pageSize int) *UsersView {
	return &UsersView{Table: New(UserColumns(), pageSize)}
}

func (v *UsersView) Filter() UserFilter { return v.filter }

// SetUsers replaces the collection after a refetch. The page index is
// clamped so a shrunken result keeps showing its last page.
func (v *UsersView) SetUsers(users []models.User) {
	v.all = users
	v.SetRows(FilterUsers(users, v.filter))
	v.SetPageIndex(v.PageIndex())
}

// SetFilter applies f and returns to the first page when it differs from the
// current filter.
func (v *UsersView) SetFilter(f UserFilter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f == v.filter {
		return nil
	}
	v.filter = f
	v.SetRows(FilterUsers(v.all, f))
	v.FirstPage()
	return nil
}

// Total is the size of the unfiltered collection.
func (v *UsersView) Total() int { return len(v.all) }

func UserColumns() []Column[models.User] {
	text := func(get func(models.User) string) func(a, b models.User) int {
		return func(a, b models.User) int {
			return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
		}
	}
	return []Column[models.User]{
		{
			ID: "id", Header: "ID",
			Compare: func(a, b models.User) int { return strings.Compare(a.ID, b.ID) },
			Cell:    func(u models.User) string { return u.ID },
		},
		{
			ID: "firstName", Header: "First Name",
			Compare: text(func(u models.User) string { return u.FirstName }),
			Cell:    func(u models.User) string { return u.FirstName },
		},
		{
			ID: "lastName", Header: "Last Name",
			Compare: text(func(u models.User) string { return u.LastName }),
			Cell:    func(u models.User) string { return u.LastName },
		},
		{
			ID: "username", Header: "Username",
			Compare: text(func(u models.User) string { return u.Username }),
			Cell:    func(u models.User) string { return u.Username },
		},
		{
			ID: "email", Header: "Email",
			Compare: text(func(u models.User) string { return u.Email }),
			Cell:    func(u models.User) string { return u.Email },
		},
		{
			ID: "role", Header: "Role",
			Compare: func(a, b models.User) int { return strings.Compare(string(a.Role), string(b.Role)) },
			Cell:    func(u models.User) string { return string(u.Role) },
		},
		{
			ID: "status", Header: "Status",
			Compare: func(a, b models.User) int { return cmp.Compare(boolInt(a.IsActive), boolInt(b.IsActive)) },
			Cell: func(u models.User) string {
				if u.IsActive {
					return "Active"
				}
				return "Inactive"
			},
		},
		{
			ID: "credits", Header: "Credits",
			Compare: func(a, b models.User) int { return cmp.Compare(a.Credits, b.Credits) },
			Cell:    func(u models.User) string { return fmt.Sprint(u.Credits) },
		},
		{
			ID: "createdAt", Header: "Created At",
			Compare: func(a, b models.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
			Cell: func(u models.User) string {
				if u.CreatedAt.IsZero() {
					return "-"
				}
				return u.CreatedAt.Format("2006-01-02")
			},
		},
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
