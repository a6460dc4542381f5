package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrBoardNotFound     = errors.New("版块不存在")
	ErrTopicNotFound     = errors.New("主题不存在")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("用户名或密码错误")
	UnauthorizedError    = errors.New("请先登录")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到 HTTP 状态码
var ErrorMap = map[error]int{
	ErrParamInvalid:      http.StatusBadRequest,
	ErrBoardNotFound:     http.StatusNotFound,
	ErrTopicNotFound:     http.StatusNotFound,
	ErrPostNotFound:      http.StatusNotFound,
	ErrUserNotFound:      http.StatusNotFound,
	ErrUserExist:         http.StatusBadRequest,
	ErrPasswordIncorrect: http.StatusUnauthorized,
	UnauthorizedError:    http.StatusUnauthorized,
	UnExpectedError:      http.StatusInternalServerError,
}

// StatusOf 返回错误对应的状态码，未知错误为 500
func StatusOf(err error) (int, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return http.StatusInternalServerError, false
}
