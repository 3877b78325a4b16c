package service

import (
	"context"
	"strings"
	"time"

	"zord/internal/models"
	"zord/internal/repository"
	"zord/internal/visibility"
)

// SearchService implements post, user, and hashtag search. Post results pass
// through the same visibility predicate as the feed; search is not a way to
// see posts the feed would hide.
type SearchService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(postRepo repository.PostRepository, userRepo repository.UserRepository) *SearchService {
	return &SearchService{postRepo: postRepo, userRepo: userRepo}
}

func (s *SearchService) resolveViewer(ctx context.Context, viewerID uint) (*models.User, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, models.NewAuthContextError(err)
	}
	return viewer, nil
}

// SearchPosts returns caption matches the viewer may see.
func (s *SearchService) SearchPosts(ctx context.Context, viewerID uint, query string, limit, offset int) (*PostPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.Search(ctx, viewer, query, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, viewer, repository.ListFilter{Caption: query})
	if err != nil {
		return nil, err
	}
	return newPostPage(visibility.FilterVisible(viewer, posts), total, limit, offset), nil
}

// SearchByHashtag returns posts carrying the tag that the viewer may see.
func (s *SearchService) SearchByHashtag(ctx context.Context, viewerID uint, tag string, limit, offset int) (*PostPage, error) {
	tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
	if tag == "" {
		return nil, models.NewValidationError("Hashtag is required")
	}

	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.SearchByHashtag(ctx, viewer, tag, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, viewer, repository.ListFilter{Hashtag: tag})
	if err != nil {
		return nil, err
	}
	return newPostPage(visibility.FilterVisible(viewer, posts), total, limit, offset), nil
}

// SearchUsers returns active users matching the query by name, email, or bio.
// The viewer never appears in their own results.
func (s *SearchService) SearchUsers(ctx context.Context, viewerID uint, query string, limit, offset int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if _, err := s.resolveViewer(ctx, viewerID); err != nil {
		return nil, err
	}
	return s.userRepo.Search(ctx, query, viewerID, limit, offset)
}

// TrendingHashtags returns the most used tags across posts from the trending
// window that the viewer may see.
func (s *SearchService) TrendingHashtags(ctx context.Context, viewerID uint, limit int) ([]repository.HashtagCount, error) {
	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	since := time.Now().Add(-trendingWindow)
	return s.postRepo.TrendingHashtags(ctx, viewer, since, limit)
}
