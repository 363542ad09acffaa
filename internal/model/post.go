package model

import "time"

// 正文长度上限（与表单校验一致）
const (
	PostTextMaxLen    = 5000
	CommentTextMaxLen = 1000
)

// Post 内容主体。PubDate 创建后不可变；作者/分组删除时级联删除帖子。
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *string   `gorm:"type:varchar(36);index:idx_post_group"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Text      string    `gorm:"type:text;not null"`
	Image     string    `gorm:"type:varchar(255)"` // 相对媒体目录的文件名，空表示无图
	PubDate   time.Time `gorm:"index:idx_post_pub_date;not null"`
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
