package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Vilbert55/yatube/internal/middleware"
	"github.com/Vilbert55/yatube/internal/service"
	"github.com/Vilbert55/yatube/pkg/response"
)

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// bindFieldErrors 把 validator 的错误摊平成 字段→文案
func bindFieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed validation: " + fe.Tag()
		}
		return fields
	}
	fields["_form"] = err.Error()
	return fields
}

// safeNext 回跳目标必须是站内路径。"//host" 和 "/\host" 会被浏览器
// 当成跨站跳转，一并拒绝。
func safeNext(next string) bool {
	if next == "" || next[0] != '/' {
		return false
	}
	return len(next) == 1 || (next[1] != '/' && next[1] != '\\')
}

// Signup 注册
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "注册信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/signup/ [post]
func (h *Handler) Signup(c *gin.Context) {
	var in service.SignupInput
	if err := c.ShouldBind(&in); err != nil {
		response.ValidationFailed(c, bindFieldErrors(err))
		return
	}
	u, err := h.authSvc.Signup(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": u.ID, "username": u.Username})
}

// Login 登录：发 JWT 并种 cookie。支持 next 参数回跳。
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginForm true "凭据"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/login/ [post]
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		response.ValidationFailed(c, bindFieldErrors(err))
		return
	}
	token, err := h.authSvc.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, "invalid username or password")
			return
		}
		response.InternalError(c, err)
		return
	}
	c.SetCookie(middleware.AuthCookie, token, int(h.cfg.JWT.TTL.Seconds()), "/", "", false, true)
	if next := c.Query("next"); safeNext(next) {
		c.Redirect(http.StatusFound, next)
		return
	}
	response.Success(c, gin.H{"token": token})
}

// Logout 清 cookie，302 回首页
// @Summary 登出
// @Tags 认证
// @Success 302
// @Router /auth/logout/ [get]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
