package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vilbert55/yatube/internal/service"
)

const (
	// AuthCookie 登录态 cookie 名
	AuthCookie = "auth_token"
	// LoginPath 未登录跳转目标
	LoginPath = "/auth/login/"

	ctxUserID   = "auth.user_id"
	ctxUsername = "auth.username"
)

// Authenticate 解析 cookie 或 Bearer token，把身份放进请求上下文。
// 不拦截：匿名请求照常通过，由 RequireAuth 决定是否放行。
func Authenticate(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if v, err := c.Cookie(AuthCookie); err == nil {
			token = v
		}
		if h := c.GetHeader("Authorization"); token == "" && strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token != "" {
			if claims, err := auth.ParseToken(token); err == nil {
				c.Set(ctxUserID, claims.Subject)
				c.Set(ctxUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// RequireAuth 未登录的修改类请求 302 到登录页，带回跳参数 next
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			q := url.Values{"next": {c.Request.URL.Path}}
			c.Redirect(http.StatusFound, LoginPath+"?"+q.Encode())
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID 当前登录用户 id；第二返回值表示是否已登录
func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}

// CurrentUsername 当前登录用户名
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}
