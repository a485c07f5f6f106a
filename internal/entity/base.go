package entity

import (
	"time"

	"gorm.io/gorm"
)

type Base struct {
	ID        string         `gorm:"primarykey;type:varchar(36)"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time      `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
