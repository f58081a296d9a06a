package userdb

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an identity record: credentials live with the identity provider,
// role labels and flags live here.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username,notnull,unique" json:"username"`
	Email         string    `bun:"email,notnull,unique" json:"email"`
	FirstName     string    `bun:"first_name,notnull,default:''" json:"first_name"`
	LastName      string    `bun:"last_name,notnull,default:''" json:"last_name"`
	IsStaff       bool      `bun:"is_staff,notnull,default:false" json:"is_staff"`
	IsSuperuser   bool      `bun:"is_superuser,notnull,default:false" json:"is_superuser"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	// ORM relationships
	Roles []*UserRole `bun:"rel:has-many,join:id=user_id" json:"-"`
}

// RoleLabels returns the labels loaded through the Roles relation.
func (u *User) RoleLabels() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.Role)
	}
	return out
}

// UserRole is one role label held by a user.
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:ur"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64  `bun:"user_id,notnull" json:"user_id"`
	Role          string `bun:"role,notnull" json:"role"`
}

// Profile is the application-specific extension of a User.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull,unique" json:"user_id"`
	Username      string    `bun:"username,notnull,default:''" json:"username"`
	FirstName     string    `bun:"first_name,notnull,default:''" json:"first_name"`
	LastName      string    `bun:"last_name,notnull,default:''" json:"last_name"`
	Phone         string    `bun:"phone,notnull,default:''" json:"phone"`
	Email         string    `bun:"email,notnull,default:''" json:"email"`
	Info          string    `bun:"info,notnull,default:''" json:"info"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
