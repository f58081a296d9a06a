package clubdb

import (
	"time"

	"github.com/uptrace/bun"
)

const shortContentLength = 50

// Club is a group users can join. Slug is derived from Title once, on insert.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title,notnull,unique" json:"title"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	Image         string    `bun:"image,notnull,default:''" json:"image"`
	Content       string    `bun:"content,notnull,default:''" json:"content"`
	Owner         string    `bun:"owner,notnull,default:''" json:"owner"`
	CreatedBy     *int64    `bun:"created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// ShortContent returns the first 50 characters of Content, with an ellipsis
// when it was cut.
func (c *Club) ShortContent() string {
	r := []rune(c.Content)
	if len(r) <= shortContentLength {
		return c.Content
	}
	return string(r[:shortContentLength]) + "..."
}

// ClubMember is one membership relation. A user holds at most one.
type ClubMember struct {
	bun.BaseModel `bun:"table:club_members,alias:cm"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	ClubID        int64     `bun:"club_id,notnull" json:"club_id"`
	UserID        int64     `bun:"user_id,notnull,unique" json:"user_id"`
	JoinedAt      time.Time `bun:"joined_at,notnull,default:current_timestamp" json:"joined_at"`
}

// Member is a membership joined with the member's username.
type Member struct {
	UserID   int64     `bun:"user_id" json:"user_id"`
	Username string    `bun:"username" json:"username"`
	JoinedAt time.Time `bun:"joined_at" json:"joined_at"`
}
