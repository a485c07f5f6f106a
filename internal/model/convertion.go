package model

import (
	"time"

	"github.com/overflow-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(DefaultTimeLayout)
}

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		Reputation: user.Reputation,
		CreatedAt:  formatTime(user.CreatedAt),
	}
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:         user.ID,
		Username:   user.Username,
		Reputation: user.Reputation,
	}
}

func ConvertProfile(user *entity.User) Profile {
	if user == nil {
		return Profile{}
	}

	return Profile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func ConvertPost(post *entity.Post) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Tags:      post.TagNames(),
		Author:    ConvertShortUser(&post.Author),
		Views:     post.Views,
		Votes:     post.Votes,
		Answers:   post.Answers,
		Bounty:    post.Bounty,
		CreatedAt: formatTime(post.CreatedAt),
		UpdatedAt: formatTime(post.UpdatedAt),
	}
}

func ConvertPosts(posts []entity.Post) []Post {
	result := make([]Post, 0, len(posts))
	for i := range posts {
		result = append(result, ConvertPost(&posts[i]))
	}

	return result
}

func ConvertPostSummary(post *entity.Post) PostSummary {
	if post == nil {
		return PostSummary{}
	}

	return PostSummary{ID: post.ID, Title: post.Title}
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    ConvertShortUser(&comment.Author),
		PostID:    comment.PostID,
		Votes:     comment.Votes,
		CreatedAt: formatTime(comment.CreatedAt),
	}
}

func ConvertComments(comments []entity.Comment) []Comment {
	result := make([]Comment, 0, len(comments))
	for i := range comments {
		result = append(result, ConvertComment(&comments[i]))
	}

	return result
}

// ConvertVoteType returns nil for an empty vote type, which is sent to client
// as null.
func ConvertVoteType(t entity.VoteType) *string {
	if t == "" {
		return nil
	}

	s := string(t)
	return &s
}
