// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"zord/internal/cache"
	"zord/internal/models"
	"zord/internal/visibility"

	"gorm.io/gorm"
)

// ListFilter narrows a visible-post listing or count. Zero values apply no
// restriction.
type ListFilter struct {
	Since   *time.Time
	Caption string
	Hashtag string
}

// HashtagCount is an aggregated hashtag usage row.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListVisible(ctx context.Context, viewer *models.User, limit, offset int) ([]*models.Post, error)
	CountVisible(ctx context.Context, viewer *models.User, filter ListFilter) (int64, error)
	Trending(ctx context.Context, viewer *models.User, since time.Time, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, viewer *models.User, query string, limit, offset int) ([]*models.Post, error)
	SearchByHashtag(ctx context.Context, viewer *models.User, tag string, limit, offset int) ([]*models.Post, error)
	TrendingHashtags(ctx context.Context, viewer *models.User, since time.Time, limit int) ([]HashtagCount, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	ListLikers(ctx context.Context, postID uint, limit, offset int) ([]models.User, error)
	GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	IncrementLikes(ctx context.Context, postID uint, delta int) error
	IncrementComments(ctx context.Context, postID uint, delta int) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyViewerDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Hashtags").
		Where("posts.is_active = ?", true).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerDetails(readDB(r.db).WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Hashtags").
		Where("posts.user_id = ? AND posts.is_active = ?", userID, true).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListVisible(ctx context.Context, viewer *models.User, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerDetails(readDB(r.db).WithContext(ctx), viewer.ID).
		Preload("User").
		Preload("Hashtags").
		Scopes(visibility.Scope(viewer)).
		Where("posts.is_active = ?", true).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// CountVisible counts the posts the viewer may see under the same scope the
// listings use, so reported totals match what pagination can reach.
func (r *postRepository) CountVisible(ctx context.Context, viewer *models.User, filter ListFilter) (int64, error) {
	query := readDB(r.db).WithContext(ctx).
		Model(&models.Post{}).
		Scopes(visibility.Scope(viewer)).
		Where("posts.is_active = ?", true)
	if filter.Since != nil {
		query = query.Where("posts.created_at > ?", *filter.Since)
	}
	if filter.Caption != "" {
		query = query.Where("LOWER(posts.caption) LIKE ?", "%"+strings.ToLower(filter.Caption)+"%")
	}
	if filter.Hashtag != "" {
		query = query.
			Joins("JOIN hashtags ON hashtags.post_id = posts.id").
			Where("hashtags.tag = ?", strings.ToLower(filter.Hashtag))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) Trending(ctx context.Context, viewer *models.User, since time.Time, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerDetails(readDB(r.db).WithContext(ctx), viewer.ID).
		Preload("User").
		Preload("Hashtags").
		Scopes(visibility.Scope(viewer)).
		Where("posts.is_active = ? AND posts.created_at > ?", true, since).
		Order("posts.likes_count DESC, posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, viewer *models.User, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + strings.ToLower(query) + "%"
	err := r.applyViewerDetails(readDB(r.db).WithContext(ctx), viewer.ID).
		Preload("User").
		Preload("Hashtags").
		Scopes(visibility.Scope(viewer)).
		Where("LOWER(posts.caption) LIKE ? AND posts.is_active = ?", like, true).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) SearchByHashtag(ctx context.Context, viewer *models.User, tag string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerDetails(readDB(r.db).WithContext(ctx), viewer.ID).
		Preload("User").
		Preload("Hashtags").
		Scopes(visibility.Scope(viewer)).
		Joins("JOIN hashtags ON hashtags.post_id = posts.id").
		Where("hashtags.tag = ? AND posts.is_active = ?", strings.ToLower(tag), true).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) TrendingHashtags(ctx context.Context, viewer *models.User, since time.Time, limit int) ([]HashtagCount, error) {
	var rows []HashtagCount
	err := readDB(r.db).WithContext(ctx).
		Table("posts").
		Select("hashtags.tag AS tag, COUNT(*) AS count").
		Joins("JOIN hashtags ON hashtags.post_id = posts.id").
		Scopes(visibility.Scope(viewer)).
		Where("posts.is_active = ? AND posts.deleted_at IS NULL AND posts.created_at > ?", true, since).
		Group("hashtags.tag").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

// applyViewerDetails adds the liked flag for the requesting user in a single query.
func (r *postRepository) applyViewerDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"posts.*, EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS is_liked",
			currentUserID,
		)
	}
	return db.Select("posts.*, ? AS is_liked", false)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	return nil
}

// Like inserts the like row if absent. Returns true when a new row was
// created; duplicate likes are absorbed by the unique index so the caller
// only bumps the counter on a genuine state change.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.PostKey(postID))
		return true, nil
	}
	return false, nil
}

// Unlike hard-deletes the like row. Returns true when a row was removed.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.PostKey(postID))
		return true, nil
	}
	return false, nil
}

// ListLikers returns the users who liked the post, most recent first.
func (r *postRepository) ListLikers(ctx context.Context, postID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := readDB(r.db).WithContext(ctx).
		Table("users").
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ? AND users.is_active = ?", postID, true).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *postRepository) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var likedPostIDs []uint
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedPostIDs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likedPostIDs, nil
}

// IncrementLikes adjusts the denormalized like counter by delta. Decrements
// clamp at zero; the counter must never go negative even if callers race.
func (r *postRepository) IncrementLikes(ctx context.Context, postID uint, delta int) error {
	return r.incrementCounter(ctx, "likes_count", postID, delta)
}

// IncrementComments adjusts the denormalized comment counter, clamped at zero.
func (r *postRepository) IncrementComments(ctx context.Context, postID uint, delta int) error {
	return r.incrementCounter(ctx, "comments_count", postID, delta)
}

func (r *postRepository) incrementCounter(ctx context.Context, column string, postID uint, delta int) error {
	if delta == 0 {
		return nil
	}
	var err error
	if delta > 0 {
		err = r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	} else {
		err = r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn(column, gorm.Expr(
				"CASE WHEN "+column+" >= ? THEN "+column+" - ? ELSE 0 END",
				-delta, -delta,
			)).Error
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}
