package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vilbert55/yatube/pkg/logger"

	"go.uber.org/zap"
)

// Response 统一返回结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Message: msg})
}

// ValidationFailed 表单校验失败：按字段返回错误信息，不中断为 500
func ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, Response{Code: 400, Message: "validation failed", Errors: fieldErrors})
}

func NotFound(c *gin.Context, msg string) {
	if msg == "" {
		msg = "not found"
	}
	c.JSON(http.StatusNotFound, Response{Code: 404, Message: msg})
}

// InternalError 兜底错误：细节只进日志，不回给客户端
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{Code: 500, Message: "internal server error"})
}
