// Package visibility implements the single predicate that decides whether a
// viewer may see a post, together with a query scope that pushes the same
// rules down into the database for bulk listing. Feed, search, and trending
// all go through this package so the rules cannot drift apart per endpoint.
package visibility

import (
	"gorm.io/gorm"

	"zord/internal/models"
)

// Allowed is the core predicate over raw attributes. The rules, in order of
// precedence:
//
//  1. admins see every post regardless of tier or college
//  2. everyone is visible to all viewers
//  3. collegeOnly requires the viewer and the post owner to share a college
//  4. studentsOnly additionally requires the viewer role to be student;
//     teachers are excluded even within their own college
//
// Unknown tiers are not visible.
func Allowed(viewerRole models.Role, viewerCollege, ownerCollege string, vis models.Visibility) bool {
	if viewerRole == models.RoleAdmin {
		return true
	}
	switch vis {
	case models.VisibilityEveryone:
		return true
	case models.VisibilityCollegeOnly:
		return viewerCollege == ownerCollege
	case models.VisibilityStudentsOnly:
		return viewerRole == models.RoleStudent && viewerCollege == ownerCollege
	default:
		return false
	}
}

// Visible reports whether viewer may see post. post.User must be populated;
// the owner's college affiliation lives there.
func Visible(viewer *models.User, post *models.Post) bool {
	return Allowed(viewer.Role, viewer.CollegeID, post.User.CollegeID, post.Visibility)
}

// Scope returns a GORM scope restricting a posts query to rows the viewer may
// see. It joins the authors so college matching happens in SQL. Callers still
// pass each returned post through Visible as a final check; the scope and the
// predicate must agree, the scope just keeps pagination honest.
func Scope(viewer *models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer.Role == models.RoleAdmin {
			return db
		}

		db = db.Joins("JOIN users ON users.id = posts.user_id")

		if viewer.Role == models.RoleStudent {
			return db.Where(
				"posts.visibility = ? OR (users.college_id = ? AND posts.visibility IN ?)",
				models.VisibilityEveryone,
				viewer.CollegeID,
				[]models.Visibility{models.VisibilityCollegeOnly, models.VisibilityStudentsOnly},
			)
		}

		// Teachers and any future non-student role: everyone, plus
		// collegeOnly within their own college.
		return db.Where(
			"posts.visibility = ? OR (users.college_id = ? AND posts.visibility = ?)",
			models.VisibilityEveryone,
			viewer.CollegeID,
			models.VisibilityCollegeOnly,
		)
	}
}

// FilterVisible re-checks a batch of posts against the predicate and returns
// only the visible ones, preserving order. Posts must have User populated.
func FilterVisible(viewer *models.User, posts []*models.Post) []*models.Post {
	filtered := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if Visible(viewer, p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
