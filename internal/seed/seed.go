package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"zord/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func onConflictDoNothing() clause.OnConflict {
	return clause.OnConflict{DoNothing: true}
}

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo data: several colleges, users of
// every role, posts across all visibility tiers, a follow mesh, and the
// likes, comments, and notifications those interactions produce.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createFollowMesh(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	if err := createInteractions(db, users, posts); err != nil {
		return fmt.Errorf("failed to create interactions: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	tables := []string{"notifications", "comments", "likes", "hashtags", "follows", "posts", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// createUsers spreads users over the colleges: one admin total, one teacher
// per college, students for the rest.
func createUsers(factory *Factory, count int) ([]*models.User, error) {
	if count < 6 {
		count = 6
	}
	colleges := Colleges()
	users := make([]*models.User, 0, count)

	admin, err := factory.CreateUser(colleges[0], models.RoleAdmin, func(u *models.User) {
		u.Name = "Admin"
		u.Email = "admin@zord.dev"
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin)

	for _, college := range colleges {
		teacher, err := factory.CreateUser(college, models.RoleTeacher)
		if err != nil {
			return nil, err
		}
		users = append(users, teacher)
	}

	for i := len(users); i < count; i++ {
		college := colleges[i%len(colleges)]
		student, err := factory.CreateUser(college, models.RoleStudent)
		if err != nil {
			return nil, err
		}
		users = append(users, student)
	}
	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[factory.rnd.Intn(len(users))]
		posts = append(posts, factory.BuildPost(user, factory.PickVisibility()))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// createFollowMesh has each user follow a handful of others.
func createFollowMesh(db *gorm.DB, users []*models.User) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // non-cryptographic use
	var follows []models.Follow
	for _, follower := range users {
		n := r.Intn(5) + 1
		for j := 0; j < n; j++ {
			followee := users[r.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			follows = append(follows, models.Follow{
				FollowerID: follower.ID,
				FolloweeID: followee.ID,
			})
		}
	}
	if len(follows) == 0 {
		return nil
	}
	// The unique pair index rejects duplicates from the random mesh.
	return db.Clauses(onConflictDoNothing()).Create(&follows).Error
}

// createInteractions adds likes, comments, and matching notifications, then
// backfills the denormalized counters to match.
func createInteractions(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // non-cryptographic use

	var likes []models.Like
	var comments []models.Comment
	var notifs []models.Notification

	for _, post := range posts {
		nLikes := r.Intn(6)
		for j := 0; j < nLikes; j++ {
			liker := users[r.Intn(len(users))]
			if liker.ID == post.UserID {
				continue
			}
			likes = append(likes, models.Like{UserID: liker.ID, PostID: post.ID})
			notifs = append(notifs, models.Notification{
				SenderID:   liker.ID,
				ReceiverID: post.UserID,
				Type:       models.NotificationLike,
				PostID:     &post.ID,
				Message:    fmt.Sprintf("%s liked your post", liker.Name),
				Seen:       r.Intn(2) == 0,
				IsActive:   true,
			})
		}

		if r.Intn(3) == 0 {
			commenter := users[r.Intn(len(users))]
			if commenter.ID != post.UserID {
				comments = append(comments, models.Comment{
					UserID:  commenter.ID,
					PostID:  post.ID,
					Content: "Nice one!",
				})
				notifs = append(notifs, models.Notification{
					SenderID:   commenter.ID,
					ReceiverID: post.UserID,
					Type:       models.NotificationComment,
					PostID:     &post.ID,
					Message:    fmt.Sprintf("%s commented on your post", commenter.Name),
					Seen:       r.Intn(2) == 0,
					IsActive:   true,
				})
			}
		}
	}

	if len(likes) > 0 {
		if err := db.Clauses(onConflictDoNothing()).Create(&likes).Error; err != nil {
			return err
		}
	}
	if len(comments) > 0 {
		if err := db.Create(&comments).Error; err != nil {
			return err
		}
	}
	if len(notifs) > 0 {
		if err := db.Create(&notifs).Error; err != nil {
			return err
		}
	}

	// Counters must agree with the rows just written.
	if err := db.Exec(`UPDATE posts SET likes_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)`).Error; err != nil {
		return err
	}
	return db.Exec(`UPDATE posts SET comments_count = (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL)`).Error
}
