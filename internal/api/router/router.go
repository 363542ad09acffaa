package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"

	_ "github.com/Vilbert55/yatube/docs"

	"github.com/Vilbert55/yatube/config"
	"github.com/Vilbert55/yatube/internal/api/handler"
	"github.com/Vilbert55/yatube/internal/middleware"
	"github.com/Vilbert55/yatube/internal/service"
)

// New 组装路由。未匹配路径 404，修改类路由先过登录门再限流。
func New(cfg *config.Config, h *handler.Handler, authSvc service.AuthService) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(
		middleware.Recovery(),
		middleware.AccessLog(),
		middleware.Authenticate(authSvc),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware("yatube"),
	)

	requireAuth := middleware.RequireAuth()
	rps, burst := cfg.Server.WriteRPS, cfg.Server.WriteBurst
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	writeLimit := middleware.RateLimit(rate.Limit(rps), burst)

	r.GET("/", h.Index)
	r.GET("/group/:slug", h.GroupPosts)
	r.GET("/follow/", requireAuth, h.FollowIndex)
	r.GET("/new/", requireAuth, h.NewPostForm)
	r.POST("/new/", requireAuth, writeLimit, h.NewPost)

	posts := r.Group("/posts")
	{
		posts.GET("/:username/", h.Profile)
		posts.GET("/:username/follow/", requireAuth, h.ProfileFollow)
		posts.GET("/:username/unfollow/", requireAuth, h.ProfileUnfollow)
		posts.GET("/:username/:post_id/", h.PostDetail)
		posts.GET("/:username/:post_id/edit/", requireAuth, h.EditPostForm)
		posts.POST("/:username/:post_id/edit/", requireAuth, writeLimit, h.EditPost)
		posts.GET("/:username/:post_id/comment/", requireAuth, h.CommentForm)
		posts.POST("/:username/:post_id/comment/", requireAuth, writeLimit, h.AddComment)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/signup/", writeLimit, h.Signup)
		auth.POST("/login/", writeLimit, h.Login)
		auth.GET("/logout/", h.Logout)
	}

	r.Static("/media", cfg.Media.Dir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(handler.NotFoundHandler)
	return r
}
