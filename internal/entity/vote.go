package entity

import (
	"time"

	"github.com/overflow-lab/backend/pkg/enum"
)

type VoteType string

var (
	UpVote   = enum.New(VoteType("up"))
	DownVote = enum.New(VoteType("down"))
)

// Vote is the vote of a user on a post. A user has at most one vote per post.
type Vote struct {
	ID        string   `gorm:"primarykey;type:varchar(36)"`
	UserID    string   `gorm:"type:varchar(36);uniqueIndex:idx_votes_user_post"`
	PostID    string   `gorm:"type:varchar(36);uniqueIndex:idx_votes_user_post;index"`
	Post      Post     `gorm:"foreignKey:PostID"`
	Type      VoteType `gorm:"type:varchar(8)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentVote is the vote of a user on a comment. A user has at most one vote
// per comment.
type CommentVote struct {
	ID        string   `gorm:"primarykey;type:varchar(36)"`
	UserID    string   `gorm:"type:varchar(36);uniqueIndex:idx_comment_votes_user_comment"`
	CommentID string   `gorm:"type:varchar(36);uniqueIndex:idx_comment_votes_user_comment;index"`
	Type      VoteType `gorm:"type:varchar(8)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
