// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"zord/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// College is a campus that seeded users belong to.
type College struct {
	ID   string
	Name string
}

// Colleges returns the campuses used by the seeder. Visibility tiers only
// become interesting with at least two colleges in play.
func Colleges() []College {
	return []College{
		{ID: "state-u", Name: "State University"},
		{ID: "tech-institute", Name: "Tech Institute"},
		{ID: "riverside-college", Name: "Riverside College"},
	}
}

// SeedPassword is the plaintext password of every seeded account.
const SeedPassword = "ZordSeedPass1!"

var hashtagPool = []string{
	"campuslife", "finals", "studygroup", "dormfood", "intramurals",
	"research", "hackathon", "orientation", "gameday", "latenight",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rnd  *rand.Rand
	hash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return &Factory{
		db:   db,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // non-cryptographic use
		hash: string(hash),
	}, nil
}

// CreateUser constructs and persists a sample user at the given college.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(college College, role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:        gofakeit.Name(),
		Email:       fmt.Sprintf("%s.%d@%s.edu", gofakeit.Username(), gofakeit.Number(100, 999), college.ID),
		Password:    f.hash,
		CollegeID:   college.ID,
		CollegeName: college.Name,
		Role:        role,
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:         gofakeit.Sentence(10),
		IsActive:    true,
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post for the user without persisting it. Captions
// carry hashtags roughly half the time so tag search has data to chew on.
func (f *Factory) BuildPost(user *models.User, vis models.Visibility) *models.Post {
	caption := gofakeit.Sentence(f.rnd.Intn(12) + 4)
	if f.rnd.Intn(2) == 0 {
		caption = fmt.Sprintf("%s #%s", caption, hashtagPool[f.rnd.Intn(len(hashtagPool))])
	}
	if f.rnd.Intn(4) == 0 {
		caption = fmt.Sprintf("%s #%s", caption, hashtagPool[f.rnd.Intn(len(hashtagPool))])
	}

	post := &models.Post{
		UserID:     user.ID,
		Caption:    caption,
		MediaURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		MediaType:  models.MediaTypeImage,
		Visibility: vis,
		IsActive:   true,
	}
	for _, tag := range models.ExtractHashtags(caption) {
		post.Hashtags = append(post.Hashtags, models.Hashtag{Tag: tag})
	}

	// Spread creation times over the last two weeks so part of the data
	// lands inside the trending window and part outside it.
	hoursBack := f.rnd.Intn(14 * 24)
	post.CreatedAt = time.Now().Add(-time.Duration(hoursBack) * time.Hour)
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// PickVisibility returns a weighted random visibility tier.
func (f *Factory) PickVisibility() models.Visibility {
	switch f.rnd.Intn(10) {
	case 0, 1, 2, 3, 4:
		return models.VisibilityEveryone
	case 5, 6, 7:
		return models.VisibilityCollegeOnly
	default:
		return models.VisibilityStudentsOnly
	}
}
