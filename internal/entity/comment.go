package entity

type Comment struct {
	Base
	Content  string `gorm:"type:text"`
	AuthorID string `gorm:"type:varchar(36);index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	PostID   string `gorm:"type:varchar(36);index"`
	Post     Post   `gorm:"foreignKey:PostID"`
	Votes    int
}
