package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/internal/model"
	"github.com/Vilbert55/yatube/internal/repository"
	"github.com/Vilbert55/yatube/pkg/cache"
	"github.com/Vilbert55/yatube/pkg/paginator"
)

// ImageUpload 上传的图片内容（handler 已读完 multipart）
type ImageUpload struct {
	Filename string
	Data     []byte
}

// PostInput 新帖/编辑共用的表单输入。Image 为 nil 时编辑保留原图。
type PostInput struct {
	Text    string
	GroupID string
	Image   *ImageUpload
}

// PostView 帖子详情：帖子本体 + 一页评论（页大小 4）
type PostView struct {
	Post     *repository.FeedRow      `json:"post"`
	Comments []*repository.CommentRow `json:"comments"`
	Page     paginator.Page           `json:"page"`
}

type PostService interface {
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	// Edit 仅作者可改，且只动 text/group/image，pub_date 与作者不变
	Edit(ctx context.Context, postID, actorID string, in PostInput) (*model.Post, error)
	// GetOwned 编辑表单回显：按 id+路径作者取帖
	GetOwned(ctx context.Context, username, postID string) (*model.Post, error)
	Detail(ctx context.Context, username, postID, pageParam string) (*PostView, error)
}

type postService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	feedCache   *cache.FeedCache
	mediaDir    string
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	feedCache *cache.FeedCache,
	mediaDir string,
) PostService {
	return &postService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		feedCache:   feedCache,
		mediaDir:    mediaDir,
	}
}

func (s *postService) validateInput(ctx context.Context, in PostInput) (*string, *ValidationError) {
	fields := map[string]string{}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		fields["text"] = "text is required"
	} else if len([]rune(text)) > model.PostTextMaxLen {
		fields["text"] = fmt.Sprintf("text must be at most %d characters", model.PostTextMaxLen)
	}

	var groupID *string
	if in.GroupID != "" {
		if _, err := s.groupRepo.GetByID(ctx, in.GroupID); err != nil {
			fields["group"] = "unknown group"
		} else {
			gid := in.GroupID
			groupID = &gid
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return groupID, nil
}

// saveImage 嗅探内容判定图片格式并落盘；非图片返回字段级错误
func (s *postService) saveImage(img *ImageUpload) (string, error) {
	sniff := img.Data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	ctype := http.DetectContentType(sniff)
	ext := ""
	switch ctype {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	default:
		return "", newValidationError("image", "upload a valid image file")
	}
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(s.mediaDir, name), img.Data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	groupID, verr := s.validateInput(ctx, in)
	if verr != nil {
		return nil, verr
	}
	image := ""
	if in.Image != nil {
		name, err := s.saveImage(in.Image)
		if err != nil {
			return nil, err
		}
		image = name
	}

	now := time.Now()
	p := &model.Post{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		GroupID:  groupID,
		Text:     strings.TrimSpace(in.Text),
		Image:    image,
		PubDate:  now,
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	// 首页片段缓存整体失效，防止窗口期内读到旧页
	s.feedCache.Invalidate(ctx)
	return p, nil
}

func (s *postService) Edit(ctx context.Context, postID, actorID string, in PostInput) (*model.Post, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// 严格的作者校验：行动者必须等于帖子作者
	if p.AuthorID != actorID {
		return nil, ErrNotAuthor
	}

	groupID, verr := s.validateInput(ctx, in)
	if verr != nil {
		return nil, verr
	}
	if in.Image != nil {
		name, err := s.saveImage(in.Image)
		if err != nil {
			return nil, err
		}
		p.Image = name
	}
	p.Text = strings.TrimSpace(in.Text)
	p.GroupID = groupID

	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.feedCache.Invalidate(ctx)
	return p, nil
}

// resolveOwned 路径 username 与帖子作者不符按 404 处理
func (s *postService) resolveOwned(ctx context.Context, username, postID string) (*model.User, *model.Post, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	p, err := s.postRepo.GetByIDAndAuthor(ctx, postID, author.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return author, p, nil
}

func (s *postService) GetOwned(ctx context.Context, username, postID string) (*model.Post, error) {
	_, p, err := s.resolveOwned(ctx, username, postID)
	return p, err
}

func (s *postService) Detail(ctx context.Context, username, postID, pageParam string) (*PostView, error) {
	author, p, err := s.resolveOwned(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	total, err := s.commentRepo.CountByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	page := paginator.Clamp(pageParam, total, CommentPageSize)
	comments, err := s.commentRepo.ListByPost(ctx, p.ID, page.Offset(), page.Size)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*repository.CommentRow{}
	}

	row := &repository.FeedRow{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		AuthorUsername: author.Username,
		GroupID:        p.GroupID,
		Text:           p.Text,
		Image:          p.Image,
		PubDate:        p.PubDate,
		CommentsCount:  total,
	}
	if p.GroupID != nil {
		if g, err := s.groupRepo.GetByID(ctx, *p.GroupID); err == nil {
			row.GroupSlug = g.Slug
		}
	}
	return &PostView{Post: row, Comments: comments, Page: page}, nil
}
