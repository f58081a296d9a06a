package competitiondb

import (
	"time"

	"github.com/uptrace/bun"
)

// Competition is hosted by exactly one club. Slug is derived from Title once,
// on insert.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:co"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Title         string    `bun:"title,notnull" json:"title"`
	Date          time.Time `bun:"date,notnull,type:date" json:"date"`
	Context       string    `bun:"context,notnull,default:''" json:"context"`
	Slug          string    `bun:"slug,notnull,unique" json:"slug"`
	ClubID        int64     `bun:"club_id,notnull" json:"club_id"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Participant is one InterestSet entry: the user added the competition to
// their profile.
type Participant struct {
	bun.BaseModel `bun:"table:competition_participants,alias:cp"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	CompetitionID int64     `bun:"competition_id,notnull" json:"competition_id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Registration is a formal sign-up carrying the participant's details.
type Registration struct {
	bun.BaseModel `bun:"table:registrations,alias:r"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	FirstName     string    `bun:"first_name,notnull" json:"first_name"`
	LastName      string    `bun:"last_name,notnull" json:"last_name"`
	Age           int       `bun:"age,notnull" json:"age"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	CompetitionID int64     `bun:"competition_id,notnull" json:"competition_id"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
