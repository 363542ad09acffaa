package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/internal/model"
)

// CommentRow 评论列表里的一条（含作者名）
type CommentRow struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Text           string    `json:"text"`
	Created        time.Time `json:"created"`
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	CountByPost(ctx context.Context, postID string) (int64, error)
	ListByPost(ctx context.Context, postID string, offset, limit int) ([]*CommentRow, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&cnt).Error
	return cnt, err
}

// ListByPost 帖子详情页的评论分页，按创建时间倒序
func (r *commentRepository) ListByPost(ctx context.Context, postID string, offset, limit int) ([]*CommentRow, error) {
	var rows []*CommentRow
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select("comments.id, comments.post_id, comments.author_id, users.username AS author_username, comments.text, comments.created").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
