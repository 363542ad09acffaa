package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vilbert55/yatube/internal/middleware"
	"github.com/Vilbert55/yatube/internal/service"
)

// ProfileFollow 关注作者（幂等）。自关注静默跳过，之后 302 回个人页。
// @Summary 关注作者
// @Tags 关系链
// @Produce json
// @Param username path string true "作者用户名"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /posts/{username}/follow/ [get]
func (h *Handler) ProfileFollow(c *gin.Context) {
	author, ok := h.authorByUsername(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUserID(c)
	if err := h.relSvc.Follow(c.Request.Context(), actorID, author.ID); err != nil && !errors.Is(err, service.ErrFollowSelf) {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}

// ProfileUnfollow 取消关注（边不存在也成功），302 回个人页
// @Summary 取消关注
// @Tags 关系链
// @Produce json
// @Param username path string true "作者用户名"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /posts/{username}/unfollow/ [get]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	author, ok := h.authorByUsername(c)
	if !ok {
		return
	}
	actorID, _ := middleware.CurrentUserID(c)
	if err := h.relSvc.Unfollow(c.Request.Context(), actorID, author.ID); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(author.Username))
}
