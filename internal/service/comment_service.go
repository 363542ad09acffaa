package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/internal/model"
	"github.com/Vilbert55/yatube/internal/repository"
)

// CommentService 评论挂接：author 取行动者身份、post 取路径解析结果，
// 两者都不信任客户端表单里的值。
type CommentService interface {
	Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("text", "text is required")
	}
	if len([]rune(text)) > model.CommentTextMaxLen {
		return nil, newValidationError("text", fmt.Sprintf("text must be at most %d characters", model.CommentTextMaxLen))
	}

	c := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
