package response

import (
	"Planting/internal/api/dto"
	"Planting/internal/pkg/consts"
	"Planting/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

// Success 成功返回封装
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: message,
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// HTML 渲染页面，注入当前登录用户
func HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = c.GetString(consts.CtxUsername)
	data["CurrentUserID"] = c.GetUint64(consts.CtxUserID)
	c.HTML(code, name, data)
}

// Redirect 表单提交成功后跳转
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// PageNotFound 路由不存在或资源不存在
func PageNotFound(c *gin.Context) {
	errorPage(c, http.StatusNotFound, "Page not found.")
}

// Error 业务错误渲染为对应状态码的错误页
func Error(c *gin.Context, err error) {
	code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		errorPage(c, code, service.UnExpectedError.Error())
		return
	}
	if code == http.StatusNotFound {
		PageNotFound(c)
		return
	}
	errorPage(c, code, err.Error())
}

func errorPage(c *gin.Context, code int, message string) {
	HTML(c, code, "error.html", gin.H{
		"Title":   http.StatusText(code),
		"Status":  code,
		"Message": message,
	})
	c.Abort()
}

// APIError JSON 接口的错误返回
func APIError(c *gin.Context, err error) {
	code, ok := service.StatusOf(err)
	if !ok {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, code, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, err.Error())
}
