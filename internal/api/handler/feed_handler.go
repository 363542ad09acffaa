package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vilbert55/yatube/internal/middleware"
	"github.com/Vilbert55/yatube/internal/service"
	"github.com/Vilbert55/yatube/pkg/response"
)

// Index 全站信息流（首页，带片段缓存）
// @Summary 全站信息流
// @Tags 信息流
// @Produce json
// @Param page query int false "页码，越界自动收敛"
// @Param order query string false "排序：-pub_date（默认）或 -comments_count"
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	pageParam := c.DefaultQuery("page", "1")
	orderParam := service.NormalizeOrder(c.Query("order"))
	key := h.feedCache.Key(pageParam, orderParam)

	if payload, ok := h.feedCache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	feed, err := h.feedSvc.Index(c.Request.Context(), pageParam, orderParam)
	if err != nil {
		fail(c, err)
		return
	}
	if payload, err := json.Marshal(response.Response{Code: 0, Message: "ok", Data: feed}); err == nil {
		h.feedCache.Set(c.Request.Context(), key, payload)
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}
	response.Success(c, feed)
}

// GroupPosts 分组信息流
// @Summary 分组信息流
// @Tags 信息流
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码"
// @Param order query string false "排序"
// @Success 200 {object} response.Response{data=service.GroupView}
// @Failure 404 {object} response.Response
// @Router /group/{slug} [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	view, err := h.feedSvc.Group(c.Request.Context(), c.Param("slug"), c.DefaultQuery("page", "1"), c.Query("order"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}

// FollowIndex 关注页：只看已关注作者的帖子
// @Summary 关注信息流
// @Tags 信息流
// @Produce json
// @Param page query int false "页码"
// @Param order query string false "排序"
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Router /follow/ [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	feed, err := h.feedSvc.Following(c.Request.Context(), userID, c.DefaultQuery("page", "1"), c.Query("order"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, feed)
}

// Profile 个人页：作者信息流 + 发帖数 + 关注状态
// @Summary 个人页
// @Tags 信息流
// @Produce json
// @Param username path string true "作者用户名"
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=service.ProfileView}
// @Failure 404 {object} response.Response
// @Router /posts/{username}/ [get]
func (h *Handler) Profile(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	view, err := h.feedSvc.Profile(c.Request.Context(), c.Param("username"), c.DefaultQuery("page", "1"), c.Query("order"), viewerID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, view)
}
