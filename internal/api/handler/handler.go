package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Vilbert55/yatube/config"
	"github.com/Vilbert55/yatube/internal/model"
	"github.com/Vilbert55/yatube/internal/repository"
	"github.com/Vilbert55/yatube/internal/service"
	"github.com/Vilbert55/yatube/pkg/cache"
	"github.com/Vilbert55/yatube/pkg/response"
)

// Handler 聚合全部 HTTP 处理器的依赖
type Handler struct {
	feedSvc    service.FeedService
	postSvc    service.PostService
	commentSvc service.CommentService
	relSvc     service.RelationshipService
	authSvc    service.AuthService
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	feedCache  *cache.FeedCache
	cfg        *config.Config
}

func New(
	feedSvc service.FeedService,
	postSvc service.PostService,
	commentSvc service.CommentService,
	relSvc service.RelationshipService,
	authSvc service.AuthService,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	feedCache *cache.FeedCache,
	cfg *config.Config,
) *Handler {
	return &Handler{
		feedSvc:    feedSvc,
		postSvc:    postSvc,
		commentSvc: commentSvc,
		relSvc:     relSvc,
		authSvc:    authSvc,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		feedCache:  feedCache,
		cfg:        cfg,
	}
}

// postURL 帖子详情页路径
func postURL(username, postID string) string {
	return fmt.Sprintf("/posts/%s/%s/", username, postID)
}

// profileURL 个人页路径
func profileURL(username string) string {
	return fmt.Sprintf("/posts/%s/", username)
}

// fail 统一的错误收口：按错误分类映射响应
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "")
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Fields)
	default:
		response.InternalError(c, err)
	}
}

// authorByUsername 路径段 username 解析成用户，未知即 404
func (h *Handler) authorByUsername(c *gin.Context) (*model.User, bool) {
	u, err := h.userRepo.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "")
		} else {
			response.InternalError(c, err)
		}
		return nil, false
	}
	return u, true
}

// NotFoundHandler 未匹配路由
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "not found", "path": c.Request.URL.Path})
}
