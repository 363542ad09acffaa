package service

import (
	"context"
	"errors"

	"github.com/Vilbert55/yatube/internal/repository"
)

var (
	ErrFollowSelf = errors.New("cannot follow self")
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, userID, authorID string) error
	Unfollow(ctx context.Context, userID, authorID string) error
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
}

func NewRelationshipService(followRepo repository.FollowRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo}
}

// Follow 建立关注边。自关注拒绝；重复关注靠唯一键 + DO NOTHING 幂等。
func (s *relationshipService) Follow(ctx context.Context, userID, authorID string) error {
	if userID == authorID {
		return ErrFollowSelf
	}
	return s.followRepo.Create(ctx, userID, authorID)
}

// Unfollow 删除关注边，边不存在时同样成功
func (s *relationshipService) Unfollow(ctx context.Context, userID, authorID string) error {
	return s.followRepo.Delete(ctx, userID, authorID)
}

// IsFollowing 只用于渲染关注按钮状态，不参与信息流过滤
func (s *relationshipService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	return s.followRepo.Exists(ctx, userID, authorID)
}

func (s *relationshipService) FollowedAuthorIDs(ctx context.Context, userID string) ([]string, error) {
	return s.followRepo.ListAuthorIDs(ctx, userID)
}
