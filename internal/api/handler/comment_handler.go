package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vilbert55/yatube/internal/middleware"
	"github.com/Vilbert55/yatube/pkg/response"
)

type commentForm struct {
	Text string `form:"text" json:"text"`
}

// CommentForm 评论表单：回显帖子 + 当前评论页
// @Summary 评论表单
// @Tags 评论
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子 id"
// @Success 200 {object} response.Response{data=service.PostView}
// @Router /posts/{username}/{post_id}/comment/ [get]
func (h *Handler) CommentForm(c *gin.Context) {
	view, err := h.postSvc.Detail(c.Request.Context(), c.Param("username"), c.Param("post_id"), c.DefaultQuery("page", "1"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// AddComment 发评论。author 一律取登录身份、post 取路径解析结果，
// 表单里塞别的 author/post 字段不起作用。成功 302 回帖子页。
// @Summary 发评论
// @Tags 评论
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username path string true "作者用户名"
// @Param post_id path string true "帖子 id"
// @Param text formData string true "评论正文，最长 1000"
// @Success 302
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{username}/{post_id}/comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	username, postID := c.Param("username"), c.Param("post_id")
	p, err := h.postSvc.GetOwned(c.Request.Context(), username, postID)
	if err != nil {
		fail(c, err)
		return
	}

	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "malformed request body")
		return
	}
	actorID, _ := middleware.CurrentUserID(c)
	if _, err := h.commentSvc.Add(c.Request.Context(), p.ID, actorID, form.Text); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(username, postID))
}
