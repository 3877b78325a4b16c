package service

import (
	"context"
	"fmt"
	"strings"

	"zord/internal/models"
	"zord/internal/repository"
	"zord/internal/visibility"
)

const (
	maxCaptionLen = 2200
)

// Notifier is the slice of the notification dispatch core the content
// services need.
type Notifier interface {
	Notify(ctx context.Context, in NotifyInput) error
	CascadeDeleteForPost(ctx context.Context, postID uint) error
}

// PostService implements post creation, retrieval, mutation, and likes.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier Notifier
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID     uint
	Caption    string
	MediaURL   string
	MediaType  string
	Visibility models.Visibility
}

// UpdatePostInput carries the mutable fields of a post.
type UpdatePostInput struct {
	UserID     uint
	PostID     uint
	Caption    *string
	Visibility *models.Visibility
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	caption := strings.TrimSpace(in.Caption)
	if caption == "" && in.MediaURL == "" {
		return nil, models.NewValidationError("A post needs a caption or media")
	}
	if len(caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}

	vis := in.Visibility
	if vis == "" {
		vis = models.VisibilityEveryone
	}
	if !vis.Valid() {
		return nil, models.NewValidationError("Invalid visibility tier")
	}

	if in.MediaURL != "" {
		switch in.MediaType {
		case models.MediaTypeImage, models.MediaTypeVideo:
			// valid
		default:
			return nil, models.NewValidationError("Invalid media type")
		}
	}

	post := &models.Post{
		UserID:     in.UserID,
		Caption:    caption,
		MediaURL:   in.MediaURL,
		MediaType:  in.MediaType,
		Visibility: vis,
		IsActive:   true,
	}
	for _, tag := range models.ExtractHashtags(caption) {
		post.Hashtags = append(post.Hashtags, models.Hashtag{Tag: tag})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost returns a single post if the viewer may see it. Posts outside the
// viewer's visibility read as absent rather than forbidden.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, models.NewAuthContextError(err)
	}

	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if !visibility.Visible(viewer, post) {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// GetPostLikers lists the users who liked a post. The post itself must be
// visible to the viewer; an invisible post reads as not found here too.
func (s *PostService) GetPostLikers(ctx context.Context, viewerID, postID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.GetPost(ctx, viewerID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikers(ctx, postID, limit, offset)
}

// GetUserPosts returns a user's posts filtered to what the viewer may see.
func (s *PostService) GetUserPosts(ctx context.Context, viewerID, ownerID uint, limit, offset int) ([]*models.Post, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, models.NewAuthContextError(err)
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByUserID(ctx, ownerID, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}
	return visibility.FilterVisible(viewer, posts), nil
}

// UpdatePost changes a post's caption or visibility. Only the owner or an
// admin may mutate a post; this includes its visibility tier.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnerOrAdmin(ctx, post, in.UserID, "update"); err != nil {
		return nil, err
	}

	if in.Caption != nil {
		caption := strings.TrimSpace(*in.Caption)
		if len(caption) > maxCaptionLen {
			return nil, models.NewValidationError("Caption too long (max 2200 characters)")
		}
		post.Caption = caption
	}
	if in.Visibility != nil {
		if !in.Visibility.Valid() {
			return nil, models.NewValidationError("Invalid visibility tier")
		}
		post.Visibility = *in.Visibility
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost soft-deletes a post and cascades its notifications so no like
// or comment notification outlives its subject.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.requireOwnerOrAdmin(ctx, post, userID, "delete"); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	return s.notifier.CascadeDeleteForPost(ctx, postID)
}

// LikePost records a like and notifies the post owner. Repeat likes are
// no-ops: the counter only moves when the like set actually changes.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.GetPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	created, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if created {
		if err := s.postRepo.IncrementLikes(ctx, postID, 1); err != nil {
			return nil, err
		}

		liker, lerr := s.userRepo.GetByID(ctx, userID)
		message := "liked your post"
		if lerr == nil {
			message = fmt.Sprintf("%s liked your post", liker.Name)
		}
		if err := s.notifier.Notify(ctx, NotifyInput{
			SenderID:   userID,
			ReceiverID: post.UserID,
			Type:       models.NotificationLike,
			Message:    message,
			PostID:     &postID,
		}); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

// UnlikePost removes a like. No notification is produced; removing a like is
// not a social action worth announcing.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.GetPost(ctx, userID, postID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.postRepo.IncrementLikes(ctx, postID, -1); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

func (s *PostService) requireOwnerOrAdmin(ctx context.Context, post *models.Post, userID uint, action string) error {
	if post.UserID == userID {
		return nil
	}
	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.NewAuthContextError(err)
	}
	if actor.Role != models.RoleAdmin {
		return models.NewAccessDeniedError("Only the owner or an admin may " + action + " this post")
	}
	return nil
}
