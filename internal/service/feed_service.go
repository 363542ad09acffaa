package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/internal/model"
	"github.com/Vilbert55/yatube/internal/repository"
	"github.com/Vilbert55/yatube/pkg/paginator"
)

// 固定页大小：帖子流 5，评论列表 4
const (
	FeedPageSize    = 5
	CommentPageSize = 4
)

// FeedPage 一页信息流
type FeedPage struct {
	Posts []*repository.FeedRow `json:"posts"`
	Page  paginator.Page        `json:"page"`
	Order string                `json:"order"`
}

// GroupView 分组页：分组信息 + 该组信息流
type GroupView struct {
	Group *model.Group `json:"group"`
	Feed  *FeedPage    `json:"feed"`
}

// AuthorInfo 个人页展示的作者摘要
type AuthorInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileView 个人页：作者、发帖数、当前观察者是否已关注、作者信息流
type ProfileView struct {
	Author    AuthorInfo `json:"author"`
	PostCount int64      `json:"post_count"`
	Following bool       `json:"following"`
	Feed      *FeedPage  `json:"feed"`
}

// FeedService 信息流装配：四个上下文共用同一套过滤 + 聚合 + 排序 + 分页
type FeedService interface {
	Index(ctx context.Context, pageParam, orderParam string) (*FeedPage, error)
	Group(ctx context.Context, slug, pageParam, orderParam string) (*GroupView, error)
	// Profile viewerID 为空表示未登录，following 恒为 false
	Profile(ctx context.Context, username, pageParam, orderParam, viewerID string) (*ProfileView, error)
	Following(ctx context.Context, userID, pageParam, orderParam string) (*FeedPage, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	groupRepo  repository.GroupRepository
	followRepo repository.FollowRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	followRepo repository.FollowRepository,
) FeedService {
	return &feedService{postRepo: postRepo, userRepo: userRepo, groupRepo: groupRepo, followRepo: followRepo}
}

// NormalizeOrder 只认显式的 -comments_count，其余一律回退 -pub_date
func NormalizeOrder(orderParam string) string {
	if orderParam == repository.OrderComments {
		return repository.OrderComments
	}
	return repository.OrderPubDate
}

// buildFeed 统一的装配路径：计数 → 页码收敛 → 取页
func (s *feedService) buildFeed(ctx context.Context, f repository.FeedFilter, pageParam, orderParam string) (*FeedPage, error) {
	order := NormalizeOrder(orderParam)
	total, err := s.postRepo.CountFeed(ctx, f)
	if err != nil {
		return nil, err
	}
	page := paginator.Clamp(pageParam, total, FeedPageSize)
	rows, err := s.postRepo.ListFeed(ctx, f, order, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*repository.FeedRow{}
	}
	return &FeedPage{Posts: rows, Page: page, Order: order}, nil
}

func (s *feedService) Index(ctx context.Context, pageParam, orderParam string) (*FeedPage, error) {
	return s.buildFeed(ctx, repository.FeedFilter{}, pageParam, orderParam)
}

func (s *feedService) Group(ctx context.Context, slug, pageParam, orderParam string) (*GroupView, error) {
	g, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未知 slug 是查找失败，不是空信息流
			return nil, ErrNotFound
		}
		return nil, err
	}
	feed, err := s.buildFeed(ctx, repository.FeedFilter{GroupID: g.ID}, pageParam, orderParam)
	if err != nil {
		return nil, err
	}
	return &GroupView{Group: g, Feed: feed}, nil
}

func (s *feedService) Profile(ctx context.Context, username, pageParam, orderParam, viewerID string) (*ProfileView, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	feed, err := s.buildFeed(ctx, repository.FeedFilter{AuthorID: author.ID}, pageParam, orderParam)
	if err != nil {
		return nil, err
	}
	following := false
	if viewerID != "" {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return &ProfileView{
		Author:    AuthorInfo{ID: author.ID, Username: author.Username, FirstName: author.FirstName, LastName: author.LastName},
		PostCount: feed.Page.Total,
		Following: following,
		Feed:      feed,
	}, nil
}

func (s *feedService) Following(ctx context.Context, userID, pageParam, orderParam string) (*FeedPage, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildFeed(ctx, repository.FeedFilter{AuthorIn: authorIDs, AuthorInSet: true}, pageParam, orderParam)
}
