package service

import (
	"context"
	"fmt"

	"zord/internal/models"
	"zord/internal/repository"
)

// FollowService implements the follower graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   Notifier
}

// FollowStats summarizes a user's position in the follow graph.
type FollowStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// NewFollowService creates a new FollowService.
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// Follow creates the edge follower -> followee and notifies the followee.
// Following twice is a no-op; the second call produces no new edge and no
// second notification.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	created, err := s.followRepo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	follower, ferr := s.userRepo.GetByID(ctx, followerID)
	message := "started following you"
	if ferr == nil {
		message = fmt.Sprintf("%s started following you", follower.Name)
	}
	return s.notifier.Notify(ctx, NotifyInput{
		SenderID:   followerID,
		ReceiverID: followeeID,
		Type:       models.NotificationFollow,
		Message:    message,
	})
}

// Unfollow removes the edge. Unfollowing someone not followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("Cannot unfollow yourself")
	}
	_, err := s.followRepo.Unfollow(ctx, followerID, followeeID)
	return err
}

// IsFollowing reports whether follower follows followee.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followeeID)
}

// GetFollowers returns the users following userID.
func (s *FollowService) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, userID, limit, offset)
}

// GetFollowing returns the users userID follows.
func (s *FollowService) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, userID, limit, offset)
}

// GetStats returns follower and following counts for a user.
func (s *FollowService) GetStats(ctx context.Context, userID uint) (*FollowStats, error) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FollowStats{Followers: followers, Following: following}, nil
}
