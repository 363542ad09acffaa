package model

import "time"

// User 作者/读者账号
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(150);uniqueIndex:ux_user_username;not null"`
	Email     string `gorm:"type:varchar(254)"`
	Password  string `gorm:"type:varchar(128);not null"` // bcrypt hash
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
