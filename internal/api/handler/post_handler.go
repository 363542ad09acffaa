package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vilbert55/yatube/internal/middleware"
	"github.com/Vilbert55/yatube/internal/service"
	"github.com/Vilbert55/yatube/pkg/response"
)

// readImage 取 multipart 的 image 字段；未上传返回 nil
func readImage(c *gin.Context) (*service.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.ImageUpload{Filename: fh.Filename, Data: data}, nil
}

func postInputFromForm(c *gin.Context) (service.PostInput, error) {
	img, err := readImage(c)
	if err != nil {
		return service.PostInput{}, err
	}
	return service.PostInput{
		Text:    c.PostForm("text"),
		GroupID: c.PostForm("group"),
		Image:   img,
	}, nil
}

// NewPostForm 新帖表单：返回可选分组
// @Summary 新帖表单
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response
// @Router /new/ [get]
func (h *Handler) NewPostForm(c *gin.Context) {
	groups, err := h.groupRepo.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"groups": groups})
}

// NewPost 发帖。作者取登录身份；成功 302 回首页。
// @Summary 发帖
// @Tags 帖子
// @Accept mpfd
// @Produce json
// @Param text formData string true "正文，最长 5000"
// @Param group formData string false "分组 id"
// @Param image formData file false "图片附件"
// @Success 302
// @Failure 400 {object} response.Response
// @Router /new/ [post]
func (h *Handler) NewPost(c *gin.Context) {
	actorID, _ := middleware.CurrentUserID(c)
	in, err := postInputFromForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.postSvc.Create(c.Request.Context(), actorID, in); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// PostDetail 帖子详情 + 一页评论（页大小 4）
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子 id"
// @Param page query int false "评论页码"
// @Success 200 {object} response.Response{data=service.PostView}
// @Failure 404 {object} response.Response
// @Router /posts/{username}/{post_id}/ [get]
func (h *Handler) PostDetail(c *gin.Context) {
	view, err := h.postSvc.Detail(c.Request.Context(), c.Param("username"), c.Param("post_id"), c.DefaultQuery("page", "1"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// EditPostForm 编辑表单回显。非作者 302 回帖子页，不报错。
// @Summary 编辑表单
// @Tags 帖子
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子 id"
// @Success 200 {object} response.Response
// @Router /posts/{username}/{post_id}/edit/ [get]
func (h *Handler) EditPostForm(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("post_id")
	p, err := h.postSvc.GetOwned(c.Request.Context(), username, postID)
	if err != nil {
		fail(c, err)
		return
	}
	actorID, _ := middleware.CurrentUserID(c)
	if p.AuthorID != actorID {
		c.Redirect(http.StatusFound, postURL(username, postID))
		return
	}
	groups, err := h.groupRepo.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"post": p, "groups": groups})
}

// EditPost 改帖：仅作者，只动 text/group/image。成功 302 回帖子页。
// @Summary 改帖
// @Tags 帖子
// @Accept mpfd
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子 id"
// @Param text formData string true "正文"
// @Param group formData string false "分组 id"
// @Param image formData file false "替换图片"
// @Success 302
// @Failure 400 {object} response.Response
// @Router /posts/{username}/{post_id}/edit/ [post]
func (h *Handler) EditPost(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("post_id")
	p, err := h.postSvc.GetOwned(c.Request.Context(), username, postID)
	if err != nil {
		fail(c, err)
		return
	}

	actorID, _ := middleware.CurrentUserID(c)
	in, err := postInputFromForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.postSvc.Edit(c.Request.Context(), p.ID, actorID, in); err != nil {
		if errors.Is(err, service.ErrNotAuthor) {
			c.Redirect(http.StatusFound, postURL(username, postID))
			return
		}
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(username, postID))
}
