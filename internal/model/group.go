package model

import "time"

// Group 内容分组（社区）。由后台创建，帖子只引用不创建。
type Group struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)"`
	Title       string  `gorm:"type:varchar(200);not null"`
	Slug        *string `gorm:"type:varchar(50);uniqueIndex:ux_group_slug"`
	Description string  `gorm:"type:varchar(200)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Group) TableName() string { return "groups" }
