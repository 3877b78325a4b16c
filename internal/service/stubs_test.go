package service

import (
	"context"
	"time"

	"zord/internal/models"
	"zord/internal/repository"
)

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	getByIDFn         func(context.Context, uint) (*models.Notification, error)
	getByReceiverFn   func(context.Context, uint, bool, int, int) ([]models.Notification, error)
	countByReceiverFn func(context.Context, uint, bool) (int64, error)
	countUnseenFn     func(context.Context, uint) (int64, error)
	markSeenFn        func(context.Context, uint) error
	markAllSeenFn     func(context.Context, uint) error
	deleteFn          func(context.Context, uint) error
	deleteForPostFn   func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) GetByReceiver(ctx context.Context, receiverID uint, unseenOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.getByReceiverFn(ctx, receiverID, unseenOnly, limit, offset)
}
func (s *notificationRepoStub) CountByReceiver(ctx context.Context, receiverID uint, unseenOnly bool) (int64, error) {
	return s.countByReceiverFn(ctx, receiverID, unseenOnly)
}
func (s *notificationRepoStub) CountUnseen(ctx context.Context, receiverID uint) (int64, error) {
	return s.countUnseenFn(ctx, receiverID)
}
func (s *notificationRepoStub) MarkSeen(ctx context.Context, id uint) error {
	return s.markSeenFn(ctx, id)
}
func (s *notificationRepoStub) MarkAllSeen(ctx context.Context, receiverID uint) error {
	return s.markAllSeenFn(ctx, receiverID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *notificationRepoStub) DeleteForPost(ctx context.Context, postID uint) error {
	return s.deleteForPostFn(ctx, postID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Notification, error) {
			return &models.Notification{}, nil
		},
		getByReceiverFn: func(_ context.Context, _ uint, _ bool, _, _ int) ([]models.Notification, error) {
			return nil, nil
		},
		countByReceiverFn: func(_ context.Context, _ uint, _ bool) (int64, error) { return 0, nil },
		countUnseenFn:     func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		markSeenFn:        func(_ context.Context, _ uint) error { return nil },
		markAllSeenFn:     func(_ context.Context, _ uint) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		deleteForPostFn:   func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, int, int) ([]models.User, error)
	listByCollegeFn    func(context.Context, string, int, int) ([]models.User, error)
	searchFn           func(context.Context, string, uint, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) ListByCollege(ctx context.Context, collegeID string, limit, offset int) ([]models.User, error) {
	return s.listByCollegeFn(ctx, collegeID, limit, offset)
}
func (s *userRepoStub) Search(ctx context.Context, query string, excludeUserID uint, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, excludeUserID, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleStudent, CollegeID: "state-u"}, nil
		},
		getByIDWithPostsFn: func(_ context.Context, id uint, _ int) (*models.User, error) {
			return &models.User{ID: id, Role: models.RoleStudent, CollegeID: "state-u"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", 0)
		},
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		listByCollegeFn: func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
		searchFn: func(_ context.Context, _ string, _ uint, _, _ int) ([]models.User, error) {
			return nil, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn           func(context.Context, *models.Post) error
	getByIDFn          func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn      func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listVisibleFn      func(context.Context, *models.User, int, int) ([]*models.Post, error)
	countVisibleFn     func(context.Context, *models.User, repository.ListFilter) (int64, error)
	trendingFn         func(context.Context, *models.User, time.Time, int, int) ([]*models.Post, error)
	searchFn           func(context.Context, *models.User, string, int, int) ([]*models.Post, error)
	searchByHashtagFn  func(context.Context, *models.User, string, int, int) ([]*models.Post, error)
	trendingHashtagsFn func(context.Context, *models.User, time.Time, int) ([]repository.HashtagCount, error)
	updateFn           func(context.Context, *models.Post) error
	deleteFn           func(context.Context, uint) error
	likeFn             func(context.Context, uint, uint) (bool, error)
	unlikeFn           func(context.Context, uint, uint) (bool, error)
	listLikersFn       func(context.Context, uint, int, int) ([]models.User, error)
	getLikedPostIDsFn  func(context.Context, uint, []uint) ([]uint, error)
	incrementLikesFn   func(context.Context, uint, int) error
	incrementCommentsF func(context.Context, uint, int) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListVisible(ctx context.Context, viewer *models.User, limit, offset int) ([]*models.Post, error) {
	return s.listVisibleFn(ctx, viewer, limit, offset)
}
func (s *postRepoStub) CountVisible(ctx context.Context, viewer *models.User, filter repository.ListFilter) (int64, error) {
	return s.countVisibleFn(ctx, viewer, filter)
}
func (s *postRepoStub) Trending(ctx context.Context, viewer *models.User, since time.Time, limit, offset int) ([]*models.Post, error) {
	return s.trendingFn(ctx, viewer, since, limit, offset)
}
func (s *postRepoStub) Search(ctx context.Context, viewer *models.User, query string, limit, offset int) ([]*models.Post, error) {
	return s.searchFn(ctx, viewer, query, limit, offset)
}
func (s *postRepoStub) SearchByHashtag(ctx context.Context, viewer *models.User, tag string, limit, offset int) ([]*models.Post, error) {
	return s.searchByHashtagFn(ctx, viewer, tag, limit, offset)
}
func (s *postRepoStub) TrendingHashtags(ctx context.Context, viewer *models.User, since time.Time, limit int) ([]repository.HashtagCount, error) {
	return s.trendingHashtagsFn(ctx, viewer, since, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) ListLikers(ctx context.Context, postID uint, limit, offset int) ([]models.User, error) {
	return s.listLikersFn(ctx, postID, limit, offset)
}
func (s *postRepoStub) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return s.getLikedPostIDsFn(ctx, userID, postIDs)
}
func (s *postRepoStub) IncrementLikes(ctx context.Context, postID uint, delta int) error {
	return s.incrementLikesFn(ctx, postID, delta)
}
func (s *postRepoStub) IncrementComments(ctx context.Context, postID uint, delta int) error {
	return s.incrementCommentsF(ctx, postID, delta)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Visibility: models.VisibilityEveryone}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listVisibleFn: func(_ context.Context, _ *models.User, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countVisibleFn: func(_ context.Context, _ *models.User, _ repository.ListFilter) (int64, error) {
			return 0, nil
		},
		trendingFn: func(_ context.Context, _ *models.User, _ time.Time, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		searchFn: func(_ context.Context, _ *models.User, _ string, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		searchByHashtagFn: func(_ context.Context, _ *models.User, _ string, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		trendingHashtagsFn: func(_ context.Context, _ *models.User, _ time.Time, _ int) ([]repository.HashtagCount, error) {
			return nil, nil
		},
		updateFn:           func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		likeFn:             func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:           func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		listLikersFn:       func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
		getLikedPostIDsFn:  func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		incrementLikesFn:   func(_ context.Context, _ uint, _ int) error { return nil },
		incrementCommentsF: func(_ context.Context, _ uint, _ int) error { return nil },
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn         func(context.Context, uint, uint) (bool, error)
	unfollowFn       func(context.Context, uint, uint) (bool, error)
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	getFollowersFn   func(context.Context, uint, int, int) ([]models.User, error)
	getFollowingFn   func(context.Context, uint, int, int) ([]models.User, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unfollowFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isFollowingFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		getFollowersFn:   func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
		getFollowingFn:   func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
		countFollowersFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	getByPostIDFn func(context.Context, uint, int, int) ([]models.Comment, error)
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	return s.getByPostIDFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getByPostIDFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, error) { return nil, nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// pusherStub records realtime pushes; it can be told to fail or to report the
// receiver offline.
type pusherStub struct {
	pushed  []pushedEvent
	pushErr error
	offline bool
}

type pushedEvent struct {
	userID  uint
	payload string
}

func (s *pusherStub) PushUser(_ context.Context, userID uint, payload string) error {
	if s.pushErr != nil {
		return s.pushErr
	}
	s.pushed = append(s.pushed, pushedEvent{userID: userID, payload: payload})
	return nil
}

func (s *pusherStub) Online(_ uint) bool {
	return !s.offline
}

// notifierStub records Notify and cascade calls made by the content services.
type notifierStub struct {
	notifyFn  func(context.Context, NotifyInput) error
	cascadeFn func(context.Context, uint) error
	notified  []NotifyInput
	cascaded  []uint
}

func (s *notifierStub) Notify(ctx context.Context, in NotifyInput) error {
	s.notified = append(s.notified, in)
	if s.notifyFn != nil {
		return s.notifyFn(ctx, in)
	}
	return nil
}

func (s *notifierStub) CascadeDeleteForPost(ctx context.Context, postID uint) error {
	s.cascaded = append(s.cascaded, postID)
	if s.cascadeFn != nil {
		return s.cascadeFn(ctx, postID)
	}
	return nil
}
