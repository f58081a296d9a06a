package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// DataGenerator produces realistic, unique test values.
type DataGenerator struct {
	faker *gofakeit.Faker
	seq   int
}

// NewDataGenerator creates a generator. Pass a seed for reproducible values.
func NewDataGenerator(seed ...int64) *DataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &DataGenerator{faker: gofakeit.New(uint64(s))}
}

func (g *DataGenerator) next() int {
	g.seq++
	return g.seq
}

// Username returns a username that is unique within this generator.
func (g *DataGenerator) Username() string {
	return fmt.Sprintf("%s%d", g.faker.Username(), g.next())
}

// Email returns an email address that is unique within this generator.
func (g *DataGenerator) Email() string {
	return fmt.Sprintf("user%d.%s", g.next(), g.faker.Email())
}

func (g *DataGenerator) FirstName() string { return g.faker.FirstName() }
func (g *DataGenerator) LastName() string  { return g.faker.LastName() }

// ClubTitle returns a unique club title.
func (g *DataGenerator) ClubTitle() string {
	return fmt.Sprintf("%s Club %d", g.faker.Company(), g.next())
}

// CompetitionTitle returns a unique competition title.
func (g *DataGenerator) CompetitionTitle() string {
	return fmt.Sprintf("%s Open %d", g.faker.City(), g.next())
}

// PostTitle returns a unique post title of at least five characters.
func (g *DataGenerator) PostTitle() string {
	return fmt.Sprintf("News %d %s", g.next(), g.faker.Word())
}

// Paragraph returns filler content.
func (g *DataGenerator) Paragraph() string {
	return g.faker.Sentence(30)
}

// Age returns a plausible participant age.
func (g *DataGenerator) Age() int {
	return g.faker.Number(8, 80)
}
