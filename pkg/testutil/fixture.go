package testutil

import (
	"context"
	"time"

	"github.com/overflow-lab/backend/internal/entity"
	"github.com/overflow-lab/backend/pkg/crypto"
	"github.com/overflow-lab/backend/pkg/xcontext"
)

const Password = "password"

var now = time.Now()

var (
	// Users
	User1 = entity.User{
		Base:       entity.Base{ID: "user1", CreatedAt: now.Add(-60 * 24 * time.Hour)},
		Email:      "user1@example.com",
		Username:   "user1",
		Reputation: entity.DefaultReputation + 5,
	}

	User2 = entity.User{
		Base:       entity.Base{ID: "user2", CreatedAt: now.Add(-50 * 24 * time.Hour)},
		Email:      "user2@example.com",
		Username:   "user2",
		Reputation: entity.DefaultReputation,
	}

	User3 = entity.User{
		Base:       entity.Base{ID: "user3", CreatedAt: now.Add(-40 * 24 * time.Hour)},
		Email:      "user3@example.com",
		Username:   "user3",
		Reputation: entity.DefaultReputation,
	}

	Users = []*entity.User{&User1, &User2, &User3}

	// Posts
	Post1 = entity.Post{
		Base: entity.Base{
			ID:        "post1",
			CreatedAt: now.Add(-2 * 24 * time.Hour),
			UpdatedAt: now.Add(-time.Hour),
		},
		Title:    "How to roll back a gorm transaction",
		Content:  "My failed transaction keeps the rows. What am I missing?",
		AuthorID: User1.ID,
		Views:    10,
		Votes:    1,
		Answers:  1,
		Tags:     []entity.PostTag{{PostID: "post1", Position: 0, Name: "go"}, {PostID: "post1", Position: 1, Name: "gorm"}},
	}

	Post2 = entity.Post{
		Base: entity.Base{
			ID:        "post2",
			CreatedAt: now.Add(-10 * 24 * time.Hour),
			UpdatedAt: now.Add(-10 * 24 * time.Hour),
		},
		Title:    "Redis SETNX expiration",
		Content:  "Does SETNX accept a 100% reliable ttl?",
		AuthorID: User2.ID,
		Views:    50,
		Bounty:   50,
		Tags:     []entity.PostTag{{PostID: "post2", Position: 0, Name: "redis"}},
	}

	Post3 = entity.Post{
		Base: entity.Base{
			ID:        "post3",
			CreatedAt: now.Add(-40 * 24 * time.Hour),
			UpdatedAt: now.Add(-3 * 24 * time.Hour),
		},
		Title:    "Escaping LIKE patterns",
		Content:  "How do I search for a literal underscore_name in SQL?",
		AuthorID: User1.ID,
		Views:    5,
		Tags:     []entity.PostTag{{PostID: "post3", Position: 0, Name: "sql"}, {PostID: "post3", Position: 1, Name: "go"}},
	}

	Posts = []*entity.Post{&Post1, &Post2, &Post3}

	// Comments
	Comment1 = entity.Comment{
		Base:     entity.Base{ID: "comment1", CreatedAt: now.Add(-24 * time.Hour)},
		Content:  "Call Rollback when the callback returns an error.",
		AuthorID: User2.ID,
		PostID:   Post1.ID,
	}

	Comments = []*entity.Comment{&Comment1}

	// Votes
	Vote1 = entity.Vote{
		ID:     "vote1",
		UserID: User2.ID,
		PostID: Post1.ID,
		Type:   entity.UpVote,
	}

	// Follows
	Follow1 = entity.Follow{
		ID:     "follow1",
		UserID: User2.ID,
		PostID: Post1.ID,
	}
)

// CreateFixtureDb inserts the fixtures into the database of ctx. All fixture
// users share the same password.
func CreateFixtureDb(ctx context.Context) {
	hashed, err := crypto.HashPassword(Password)
	if err != nil {
		panic(err)
	}

	db := xcontext.DB(ctx)
	for _, u := range Users {
		user := *u
		user.Password = hashed
		if err := db.Create(&user).Error; err != nil {
			panic(err)
		}
	}

	for _, p := range Posts {
		post := *p
		post.Tags = append([]entity.PostTag{}, p.Tags...)
		if err := db.Omit("Author").Create(&post).Error; err != nil {
			panic(err)
		}
	}

	for _, c := range Comments {
		comment := *c
		if err := db.Omit("Author", "Post").Create(&comment).Error; err != nil {
			panic(err)
		}
	}

	vote := Vote1
	if err := db.Omit("Post").Create(&vote).Error; err != nil {
		panic(err)
	}

	follow := Follow1
	if err := db.Omit("Post").Create(&follow).Error; err != nil {
		panic(err)
	}
}

// NewFixtureContext returns a mock context with the fixtures inserted.
func NewFixtureContext() context.Context {
	ctx := MockContext()
	CreateFixtureDb(ctx)
	return ctx
}
