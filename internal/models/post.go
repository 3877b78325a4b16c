// Package models contains data structures for the application's domain models.
package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Visibility controls which viewers may see a post.
type Visibility string

const (
	// VisibilityEveryone makes a post visible to every role at every college.
	VisibilityEveryone Visibility = "everyone"
	// VisibilityCollegeOnly restricts a post to viewers at the author's college.
	VisibilityCollegeOnly Visibility = "collegeOnly"
	// VisibilityStudentsOnly restricts a post to students at the author's
	// college. Teachers are excluded even within the same college.
	VisibilityStudentsOnly Visibility = "studentsOnly"
)

// Valid reports whether v is one of the known visibility tiers.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityEveryone, VisibilityCollegeOnly, VisibilityStudentsOnly:
		return true
	}
	return false
}

// MediaType values accepted on a post.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post represents a media post. LikesCount and CommentsCount are denormalized
// counters; they are mutated only through atomic store-side expressions and
// are clamped so they never go negative.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID" json:"user"`
	Caption       string     `gorm:"type:text" json:"caption"`
	MediaURL      string     `gorm:"not null" json:"media_url"`
	MediaType     string     `gorm:"type:varchar(10);not null" json:"media_type"`
	MediaPublicID string     `gorm:"not null" json:"media_public_id"`
	Visibility    Visibility `gorm:"type:varchar(20);not null;default:'everyone';index" json:"visibility"`
	LikesCount    int        `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int        `gorm:"not null;default:0" json:"comments_count"`
	// IsLiked indicates whether the current requesting user liked this post (computed)
	IsLiked   bool           `gorm:"-" json:"is_liked"`
	Hashtags  []Hashtag      `gorm:"foreignKey:PostID" json:"hashtags,omitempty"`
	IsActive  bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Hashtag is a single tag extracted from a post caption, kept in its own
// table so tags can be matched and aggregated with plain SQL.
type Hashtag struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	PostID uint   `gorm:"not null;index:idx_hashtag_post_tag,unique" json:"-"`
	Tag    string `gorm:"not null;index:idx_hashtag_post_tag,unique;index" json:"tag"`
}

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags returns the lowercased, deduplicated tags found in caption.
func ExtractHashtags(caption string) []string {
	matches := hashtagPattern.FindAllStringSubmatch(caption, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := strings.ToLower(m[1])
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
