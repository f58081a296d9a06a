package authdomain

import "sort"

// Caller is an immutable snapshot of the requesting identity, taken once per
// request. Role changes made during the request are not reflected in it.
type Caller struct {
	userID      int64
	username    string
	roles       map[Role]struct{}
	isStaff     bool
	isSuperuser bool
}

// NewCaller builds a snapshot. The roles slice is copied.
func NewCaller(userID int64, username string, roles []Role, isStaff, isSuperuser bool) *Caller {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return &Caller{
		userID:      userID,
		username:    username,
		roles:       set,
		isStaff:     isStaff,
		isSuperuser: isSuperuser,
	}
}

func (c *Caller) UserID() int64     { return c.userID }
func (c *Caller) Username() string  { return c.username }
func (c *Caller) IsStaff() bool     { return c.isStaff }
func (c *Caller) IsSuperuser() bool { return c.isSuperuser }

// HasRole reports whether the caller holds r.
func (c *Caller) HasRole(r Role) bool {
	if c == nil {
		return false
	}
	_, ok := c.roles[r]
	return ok
}

// Roles returns the held roles in a stable order.
func (c *Caller) Roles() []Role {
	out := make([]Role, 0, len(c.roles))
	for r := range c.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
