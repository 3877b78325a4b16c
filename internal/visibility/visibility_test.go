package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zord/internal/models"
)

func user(role models.Role, college string) *models.User {
	return &models.User{Role: role, CollegeID: college}
}

func post(ownerRole models.Role, ownerCollege string, vis models.Visibility) *models.Post {
	return &models.Post{
		Visibility: vis,
		User:       models.User{Role: ownerRole, CollegeID: ownerCollege},
	}
}

func TestAllowed_Everyone(t *testing.T) {
	for _, role := range []models.Role{models.RoleStudent, models.RoleTeacher, models.RoleAdmin} {
		for _, college := range []string{"clg-x", "clg-y", ""} {
			assert.True(t, Allowed(role, college, "clg-x", models.VisibilityEveryone),
				"everyone tier must be visible to role=%s college=%q", role, college)
		}
	}
}

func TestAllowed_CollegeOnly(t *testing.T) {
	tests := []struct {
		name          string
		role          models.Role
		viewerCollege string
		ownerCollege  string
		want          bool
	}{
		{"student same college", models.RoleStudent, "clg-x", "clg-x", true},
		{"student other college", models.RoleStudent, "clg-y", "clg-x", false},
		{"teacher same college", models.RoleTeacher, "clg-x", "clg-x", true},
		{"teacher other college", models.RoleTeacher, "clg-y", "clg-x", false},
		{"admin other college", models.RoleAdmin, "clg-y", "clg-x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allowed(tt.role, tt.viewerCollege, tt.ownerCollege, models.VisibilityCollegeOnly)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowed_StudentsOnly(t *testing.T) {
	tests := []struct {
		name          string
		role          models.Role
		viewerCollege string
		ownerCollege  string
		want          bool
	}{
		{"student same college", models.RoleStudent, "clg-x", "clg-x", true},
		{"student other college", models.RoleStudent, "clg-y", "clg-x", false},
		{"teacher same college excluded", models.RoleTeacher, "clg-x", "clg-x", false},
		{"teacher other college", models.RoleTeacher, "clg-y", "clg-x", false},
		{"admin any college", models.RoleAdmin, "clg-z", "clg-x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allowed(tt.role, tt.viewerCollege, tt.ownerCollege, models.VisibilityStudentsOnly)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllowed_UnknownTier(t *testing.T) {
	assert.False(t, Allowed(models.RoleStudent, "clg-x", "clg-x", models.Visibility("followersOnly")))
	assert.True(t, Allowed(models.RoleAdmin, "clg-x", "clg-x", models.Visibility("followersOnly")),
		"admins bypass tier checks entirely")
}

// A teacher does not get to see their own studentsOnly post through viewer
// eyes; authorship grants no exception to the role rule.
func TestVisible_TeacherOwnStudentsOnlyPost(t *testing.T) {
	teacherB := user(models.RoleTeacher, "clg-x")
	teacherB.ID = 2

	own := post(models.RoleTeacher, "clg-x", models.VisibilityStudentsOnly)
	own.UserID = 2

	assert.False(t, Visible(teacherB, own))

	studentC := user(models.RoleStudent, "clg-x")
	assert.True(t, Visible(studentC, own))
}

func TestFilterVisible(t *testing.T) {
	posts := []*models.Post{
		post(models.RoleStudent, "clg-x", models.VisibilityEveryone),
		post(models.RoleStudent, "clg-x", models.VisibilityStudentsOnly),
		post(models.RoleStudent, "clg-y", models.VisibilityCollegeOnly),
		post(models.RoleTeacher, "clg-x", models.VisibilityCollegeOnly),
	}

	student := user(models.RoleStudent, "clg-x")
	got := FilterVisible(student, posts)
	assert.Len(t, got, 3)
	assert.Equal(t, models.VisibilityEveryone, got[0].Visibility)
	assert.Equal(t, models.VisibilityStudentsOnly, got[1].Visibility)
	assert.Equal(t, models.VisibilityCollegeOnly, got[2].Visibility)

	teacher := user(models.RoleTeacher, "clg-x")
	got = FilterVisible(teacher, posts)
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.NotEqual(t, models.VisibilityStudentsOnly, p.Visibility)
	}

	admin := user(models.RoleAdmin, "clg-z")
	assert.Len(t, FilterVisible(admin, posts), 4)
}

func TestFilterVisible_Empty(t *testing.T) {
	student := user(models.RoleStudent, "clg-x")
	got := FilterVisible(student, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
