package service

import (
	"context"
	"strings"

	"zord/internal/models"
	"zord/internal/repository"
)

// UserService implements profile retrieval and mutation.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// Profile is a user together with their follow graph position.
type Profile struct {
	User      *models.User `json:"user"`
	Followers int64        `json:"followers"`
	Following int64        `json:"following"`
}

// UpdateProfileInput carries the mutable profile fields. College affiliation
// and role are not among them; they are fixed at signup.
type UpdateProfileInput struct {
	UserID uint
	Name   *string
	Avatar *string
	Bio    *string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// GetProfile returns a user with their follower and following counts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Followers: followers, Following: following}, nil
}

// UpdateProfile applies partial updates to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		if len(name) > 100 {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = name
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Bio != nil {
		if len(*in.Bio) > 500 {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListCollegeUsers returns active users of a college.
func (s *UserService) ListCollegeUsers(ctx context.Context, collegeID string, limit, offset int) ([]models.User, error) {
	if strings.TrimSpace(collegeID) == "" {
		return nil, models.NewValidationError("College ID is required")
	}
	return s.userRepo.ListByCollege(ctx, collegeID, limit, offset)
}
