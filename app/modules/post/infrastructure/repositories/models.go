package postdb

import (
	"time"

	"github.com/uptrace/bun"
)

const shortContentLength = 50

// Post is a news item authored by a profile.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:po"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title,notnull,unique" json:"title"`
	ImageURL      string    `bun:"image_url,notnull,default:''" json:"image_url"`
	Content       string    `bun:"content,notnull,default:''" json:"content"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	UploadedAt    time.Time `bun:"uploaded_at,notnull,default:current_timestamp" json:"uploaded_at"`
	ProfileID     int64     `bun:"profile_id,notnull" json:"profile_id"`
}

// ShortContent returns the first 50 characters of Content, with an ellipsis
// when it was cut.
func (p *Post) ShortContent() string {
	r := []rune(p.Content)
	if len(r) <= shortContentLength {
		return p.Content
	}
	return string(r[:shortContentLength]) + "..."
}
