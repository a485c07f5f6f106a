package entity

type Post struct {
	Base
	Title    string
	Content  string `gorm:"type:text"`
	AuthorID string `gorm:"type:varchar(36);index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	Views    int    `gorm:"index"`
	Votes    int    `gorm:"index"`
	Answers  int
	Bounty   int

	Tags []PostTag `gorm:"foreignKey:PostID"`
}

// PostTag keeps the ordered tag list of a post.
type PostTag struct {
	PostID   string `gorm:"primaryKey;type:varchar(36)"`
	Position int    `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(255);index"`
}

func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}

	return names
}
