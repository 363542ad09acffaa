package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/internal/model"
)

// 信息流排序键（与查询参数字面值一致）
const (
	OrderPubDate  = "-pub_date"
	OrderComments = "-comments_count"
)

// FeedFilter 信息流上下文对应的过滤条件。零值 = 全站。
type FeedFilter struct {
	GroupID  string
	AuthorID string
	// Following 上下文：作者属于集合。AuthorInSet 为 true 且集合为空时结果为空。
	AuthorIn    []string
	AuthorInSet bool
}

// FeedRow 信息流里的一条帖子（含作者名、分组 slug、评论数聚合）
type FeedRow struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	GroupID        *string   `json:"group_id,omitempty"`
	GroupSlug      *string   `json:"group_slug,omitempty"`
	Text           string    `json:"text"`
	Image          string    `json:"image,omitempty"`
	PubDate        time.Time `json:"pub_date"`
	CommentsCount  int64     `json:"comments_count"`
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// GetByIDAndAuthor 路径里 username 与帖子不匹配按不存在处理
	GetByIDAndAuthor(ctx context.Context, id, authorID string) (*model.Post, error)
	CountFeed(ctx context.Context, f FeedFilter) (int64, error)
	ListFeed(ctx context.Context, f FeedFilter, order string, offset, limit int) ([]*FeedRow, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update 只写可编辑列，pub_date/author_id 永不触碰
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", p.ID).
		Select("text", "group_id", "image", "updated_at").
		Updates(map[string]any{
			"text":       p.Text,
			"group_id":   p.GroupID,
			"image":      p.Image,
			"updated_at": time.Now(),
		}).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) GetByIDAndAuthor(ctx context.Context, id, authorID string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) feedQuery(ctx context.Context, f FeedFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Post{})
	if f.GroupID != "" {
		q = q.Where("posts.group_id = ?", f.GroupID)
	}
	if f.AuthorID != "" {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.AuthorInSet {
		if len(f.AuthorIn) == 0 {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("posts.author_id IN ?", f.AuthorIn)
		}
	}
	return q
}

func (r *postRepository) CountFeed(ctx context.Context, f FeedFilter) (int64, error) {
	var cnt int64
	err := r.feedQuery(ctx, f).Count(&cnt).Error
	return cnt, err
}

// ListFeed 组装一页信息流：作者连接、分组左连、子查询聚合评论数，按指定键倒序。
func (r *postRepository) ListFeed(ctx context.Context, f FeedFilter, order string, offset, limit int) ([]*FeedRow, error) {
	orderExpr := "posts.pub_date DESC"
	if order == OrderComments {
		// 评论数并列时回退发布时间，保证分页稳定
		orderExpr = "comments_count DESC, posts.pub_date DESC"
	}
	var rows []*FeedRow
	err := r.feedQuery(ctx, f).
		Select(`posts.id, posts.author_id, users.username AS author_username,
			posts.group_id, groups.slug AS group_slug,
			posts.text, posts.image, posts.pub_date,
			(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count`).
		Joins("JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN groups ON groups.id = posts.group_id").
		Order(orderExpr).
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
