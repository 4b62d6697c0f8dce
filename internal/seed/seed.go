// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"mingle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores a plaintext password instead of hashing. Dev only.
	SkipBcrypt bool
	// DryRun builds entities without writing to the database.
	DryRun bool
	// MaxDays bounds how far in the past generated posts are dated.
	MaxDays int
}

// Post kinds used when generating content.
const (
	PostKindText  = "text"
	PostKindImage = "image"
)

// Distribution describes the post mix as percentages. Values should sum
// to 100; computeCounts gives any rounding remainder to text posts.
type Distribution struct {
	Text  int
	Image int
}

var defaultDistribution = Distribution{Text: 60, Image: 40}

// computeCounts splits total posts across kinds according to the distribution.
func computeCounts(total int, d Distribution) (text, image int) {
	image = total * d.Image / 100
	text = total - image
	return text, image
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Create test users
	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	// Create posts for users
	posts, err := createPosts(factory, r, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	// Sprinkle comments and likes over the posts
	if err := createEngagement(factory, r, users, posts); err != nil {
		return fmt.Errorf("failed to create comments and likes: %w", err)
	}
	log.Println("✓ comments and likes created")

	// Build a follow graph
	follows, err := createFollows(factory, r, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	// Direct conversations with a short message history
	convs, err := createConversations(factory, r, users)
	if err != nil {
		return fmt.Errorf("failed to create conversations: %w", err)
	}
	log.Printf("✓ %d conversations created", convs)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, follows, messages, conversation_participants, conversations, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		baseUsers := []string{"alice", "bob", "test"}
		for _, name := range baseUsers {
			name := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
				u.Avatar = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name)
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, r *rand.Rand, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 || count == 0 {
		return nil, nil
	}

	_, imageCount := computeCounts(count, defaultDistribution)

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		kind := PostKindText
		if i < imageCount {
			kind = PostKindImage
		}

		user := users[r.Intn(len(users))]
		posts = append(posts, factory.BuildPost(user, kind))
	}

	// Batch insert in chunks to keep statement sizes reasonable
	const chunkSize = 200
	for start := 0; start < len(posts); start += chunkSize {
		end := start + chunkSize
		if end > len(posts) {
			end = len(posts)
		}
		if err := factory.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func createEngagement(factory *Factory, r *rand.Rand, users []*models.User, posts []*models.Post) error {
	if len(users) == 0 {
		return nil
	}

	for _, post := range posts {
		// 0-4 comments per post
		for i := 0; i < r.Intn(5); i++ {
			commenter := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return err
			}
		}

		// Each user likes roughly a third of posts; pick distinct likers
		// so the unique (user_id, post_id) index is never violated.
		for _, idx := range r.Perm(len(users)) {
			if r.Float32() >= 0.3 {
				continue
			}
			if err := factory.CreateLike(users[idx], post); err != nil {
				return err
			}
		}
	}
	return nil
}

func createFollows(factory *Factory, r *rand.Rand, users []*models.User) (int, error) {
	created := 0
	for i, follower := range users {
		// Each user follows a handful of others
		for _, idx := range r.Perm(len(users)) {
			if idx == i || created >= len(users)*3 {
				continue
			}
			if r.Float32() >= 0.2 {
				continue
			}
			if err := factory.CreateFollow(follower, users[idx]); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createConversations(factory *Factory, r *rand.Rand, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	// Pair up neighbours so every seeded user has at least one DM thread.
	created := 0
	for i := 0; i+1 < len(users); i += 2 {
		a, b := users[i], users[i+1]
		conv, err := factory.CreateDirectConversation(a, b)
		if err != nil {
			return created, err
		}
		created++

		// 2-8 messages alternating between the two participants
		messageCount := 2 + r.Intn(7)
		for m := 0; m < messageCount; m++ {
			sender := a
			if m%2 == 1 {
				sender = b
			}
			if _, err := factory.CreateMessage(conv, sender); err != nil {
				return created, err
			}
		}
	}
	return created, nil
}
