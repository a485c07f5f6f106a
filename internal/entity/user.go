package entity

const DefaultReputation = 1

type User struct {
	Base
	Email      string `gorm:"type:varchar(255);uniqueIndex"`
	Username   string `gorm:"type:varchar(255);uniqueIndex"`
	Password   string
	Reputation int `gorm:"default:1"`
}
