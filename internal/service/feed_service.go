package service

import (
	"context"
	"time"

	"zord/internal/models"
	"zord/internal/repository"
	"zord/internal/visibility"
)

// trendingWindow is how far back the trending feed reaches.
const trendingWindow = 24 * time.Hour

// PostPage is one visibility-scoped page of posts with the totals clients
// need to paginate. Total counts what the store filter admits; the per-item
// recheck may trim a page below Limit without shifting later offsets.
type PostPage struct {
	Posts      []*models.Post `json:"posts"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}

func newPostPage(posts []*models.Post, total int64, limit, offset int) *PostPage {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return &PostPage{
		Posts:      posts,
		Total:      total,
		TotalPages: totalPages,
		Limit:      limit,
		Offset:     offset,
	}
}

// FeedService assembles post listings scoped to what the viewer may see.
type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{postRepo: postRepo, userRepo: userRepo}
}

// resolveViewer loads the viewer identity that scopes every listing. A failed
// lookup fails the whole operation; the feed is never computed with a guessed
// or defaulted viewer.
func (s *FeedService) resolveViewer(ctx context.Context, viewerID uint) (*models.User, error) {
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, models.NewAuthContextError(err)
	}
	return viewer, nil
}

// GetFeed returns the viewer's feed page, newest first. Every post is
// re-checked against the visibility predicate after the store filter.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) (*PostPage, error) {
	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListVisible(ctx, viewer, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, viewer, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	// The SQL scope and the predicate should agree; the recheck catches
	// anything the filter cannot express.
	return newPostPage(visibility.FilterVisible(viewer, posts), total, limit, offset), nil
}

// GetTrending returns posts from the trending window ordered by like count.
// The same visibility predicate applies; trending is not a side door.
func (s *FeedService) GetTrending(ctx context.Context, viewerID uint, limit, offset int) (*PostPage, error) {
	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	since := time.Now().Add(-trendingWindow)
	posts, err := s.postRepo.Trending(ctx, viewer, since, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountVisible(ctx, viewer, repository.ListFilter{Since: &since})
	if err != nil {
		return nil, err
	}
	return newPostPage(visibility.FilterVisible(viewer, posts), total, limit, offset), nil
}
