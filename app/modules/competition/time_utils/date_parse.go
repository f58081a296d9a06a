package competitiontime

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ISODate is the canonical competition date layout.
const ISODate = "2006-01-02"

// ErrUnrecognizedDate is returned when input is neither ISO nor a phrase the
// natural language parser understands.
var ErrUnrecognizedDate = errors.New("unrecognized date")

// Clock supplies the reference time for relative dates.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// AnchorClock always returns the same instant so relative input parses
// deterministically.
type AnchorClock struct {
	anchor time.Time
}

// NewAnchorClock anchors at t, or at the current time when t is zero.
func NewAnchorClock(t time.Time) AnchorClock {
	if t.IsZero() {
		return AnchorClock{anchor: time.Now().UTC()}
	}
	return AnchorClock{anchor: t}
}

func (c AnchorClock) Now() time.Time { return c.anchor }

// DateParserInterface defines date parsing for competition forms.
type DateParserInterface interface {
	ParseDate(input string, clock Clock) (time.Time, error)
}

// DateParser turns form input into a calendar date.
type DateParser struct {
	w *when.Parser
}

// NewDateParser creates a DateParser with the English and common rule sets.
func NewDateParser() *DateParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DateParser{w: w}
}

// ParseDate accepts "2006-01-02" or phrases such as "tomorrow" and
// "next friday" relative to clock. The result is midnight UTC of the day.
func (p *DateParser) ParseDate(input string, clock Clock) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnrecognizedDate
	}

	if t, err := time.Parse(ISODate, input); err == nil {
		return t, nil
	}

	now := clock.Now()
	r, err := p.w.Parse(strings.ToLower(input), now)
	if err != nil {
		slog.Warn("Error parsing date input with when", slog.String("input", input), slog.Any("error", err))
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, input)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognizedDate, input)
	}

	d := r.Time.In(now.Location())
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

var _ DateParserInterface = (*DateParser)(nil)
