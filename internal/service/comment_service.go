package service

import (
	"context"
	"fmt"
	"strings"

	"zord/internal/models"
	"zord/internal/repository"
	"zord/internal/visibility"
)

const maxCommentLen = 1000

// CommentService implements commenting on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// AddCommentInput carries the fields for a new comment.
type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// visiblePost loads the post and checks the commenting user may see it.
func (s *CommentService) visiblePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	viewer, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, models.NewAuthContextError(err)
	}
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !visibility.Visible(viewer, post) {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// AddComment creates a comment, bumps the post's comment counter, and
// notifies the post owner.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	post, err := s.visiblePost(ctx, in.UserID, in.PostID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementComments(ctx, in.PostID, 1); err != nil {
		return nil, err
	}

	author, aerr := s.userRepo.GetByID(ctx, in.UserID)
	message := "commented on your post"
	if aerr == nil {
		message = fmt.Sprintf("%s commented on your post", author.Name)
	}
	if err := s.notifier.Notify(ctx, NotifyInput{
		SenderID:   in.UserID,
		ReceiverID: post.UserID,
		Type:       models.NotificationComment,
		Message:    message,
		PostID:     &in.PostID,
	}); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetComments returns a post's comments, oldest first, provided the viewer
// may see the post.
func (s *CommentService) GetComments(ctx context.Context, viewerID, postID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.visiblePost(ctx, viewerID, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset)
}

// DeleteComment removes a comment. The comment author, the post owner, and
// admins may delete; the counter decrement clamps at zero.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		post, perr := s.postRepo.GetByID(ctx, comment.PostID, userID)
		if perr != nil {
			return perr
		}
		if post.UserID != userID {
			actor, aerr := s.userRepo.GetByID(ctx, userID)
			if aerr != nil {
				return models.NewAuthContextError(aerr)
			}
			if actor.Role != models.RoleAdmin {
				return models.NewAccessDeniedError("Not allowed to delete this comment")
			}
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	return s.postRepo.IncrementComments(ctx, comment.PostID, -1)
}
