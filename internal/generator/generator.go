package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/users-generator-api/internal/models"
)

const (
	MinCount = 1
	MaxCount = 100

	minPasswordLen = 6
	maxPasswordLen = 10

	emailAttempts = 5
)

var birthDateFloor = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator produces synthetic user profiles. It holds no fake-data state;
// each Generate call seeds its own source.
type Generator struct {
	maxCount int
	seed     func() uint64
	now      func() time.Time
}

// New returns a Generator that accepts up to maxCount profiles per call.
// Values outside [1, 100] fall back to 100.
func New(maxCount int) *Generator {
	if maxCount < MinCount || maxCount > MaxCount {
		maxCount = MaxCount
	}
	return &Generator{
		maxCount: maxCount,
		seed:     rand.Uint64,
		now:      time.Now,
	}
}

// Generate returns exactly count profiles. Emails are unique within the
// call; usernames are not de-duplicated.
func (g *Generator) Generate(count int) ([]models.GeneratedProfile, error) {
	if count < MinCount || count > g.maxCount {
		return nil, models.NewValidationError("count",
			fmt.Sprintf("must be between %d and %d", MinCount, g.maxCount))
	}

	f := gofakeit.New(g.seed())
	latest := g.now().UTC().AddDate(-18, 0, 0)
	emails := make(map[string]bool, count)

	profiles := make([]models.GeneratedProfile, 0, count)
	for i := 0; i < count; i++ {
		profiles = append(profiles, g.profile(f, latest, emails))
	}

	return profiles, nil
}

func (g *Generator) profile(f *gofakeit.Faker, latest time.Time, emails map[string]bool) models.GeneratedProfile {
	first := f.FirstName()
	last := f.LastName()
	username := strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, f.IntRange(1, 999)))

	role := models.RoleUser
	if f.Bool() {
		role = models.RoleAdmin
	}

	return models.GeneratedProfile{
		FirstName:   first,
		LastName:    last,
		BirthDate:   f.DateRange(birthDateFloor, latest).Format(models.DateLayout),
		City:        f.City(),
		Country:     f.CountryAbr(),
		Avatar:      avatarURL(username),
		Company:     f.Company(),
		JobPosition: f.JobTitle(),
		Mobile:      f.Phone(),
		Username:    username,
		Email:       uniqueEmail(f, emails),
		Password:    f.Password(true, true, true, false, false, f.IntRange(minPasswordLen, maxPasswordLen)),
		Role:        role,
	}
}

// uniqueEmail draws emails until one is unused in this call. After a few
// collisions the local part gets a numeric suffix.
func uniqueEmail(f *gofakeit.Faker, seen map[string]bool) string {
	var email string
	for i := 0; i < emailAttempts; i++ {
		email = strings.ToLower(f.Email())
		if !seen[email] {
			seen[email] = true
			return email
		}
	}

	local, domain, _ := strings.Cut(email, "@")
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%d@%s", local, n, domain)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}

func avatarURL(username string) string {
	return "https://picsum.photos/seed/" + username + "/200/200"
}
