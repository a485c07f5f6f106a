package entity

import "time"

type Follow struct {
	ID        string `gorm:"primarykey;type:varchar(36)"`
	UserID    string `gorm:"type:varchar(36);uniqueIndex:idx_follows_user_post"`
	PostID    string `gorm:"type:varchar(36);uniqueIndex:idx_follows_user_post;index"`
	Post      Post   `gorm:"foreignKey:PostID"`
	CreatedAt time.Time
}
