package handler

import (
	"Planting/internal/api/dto"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/response"
	"Planting/internal/pkg/security"
	"Planting/internal/pkg/util"
	"Planting/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	userSvc      service.UserService
	cookieSecure bool
}

func NewAccountHandler(userSvc service.UserService, cookieSecure bool) *AccountHandler {
	return &AccountHandler{
		userSvc:      userSvc,
		cookieSecure: cookieSecure,
	}
}

func (s *AccountHandler) LoginPage(c *gin.Context) {
	renderLogin(c, c.Query(consts.NextParam), &dto.LoginDTO{}, dto.FormErrors{})
}

// Login 登录成功写入 Cookie，并跳回 next 指向的站内地址
func (s *AccountHandler) Login(c *gin.Context) {
	next := c.PostForm(consts.NextParam)
	if next == "" {
		next = c.Query(consts.NextParam)
	}

	form := &dto.LoginDTO{}
	formErrors := dto.FormErrors{}
	if err := c.ShouldBind(form); err != nil {
		formErrors.Add(dto.NonFieldErrors, service.ErrParamInvalid.Error())
	} else {
		form.Normalize()
		formErrors = util.ValidateForm(form)
	}
	if formErrors.HasErrors() {
		renderLogin(c, next, form, formErrors)
		return
	}

	token, user, err := s.userSvc.Login(c.Request.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrPasswordIncorrect) {
			formErrors.Add(dto.NonFieldErrors, err.Error())
			renderLogin(c, next, form, formErrors)
			return
		}
		response.Error(c, err)
		return
	}

	log.InfoContext(c.Request.Context(), "user login", "user_id", user.ID)
	s.setTokenCookie(c, token)
	response.Redirect(c, util.SafeNext(next, "/"))
}

func renderLogin(c *gin.Context, next string, form *dto.LoginDTO, formErrors dto.FormErrors) {
	response.HTML(c, http.StatusOK, "login.html", gin.H{
		"Title":  "Log in",
		"Next":   util.SafeNext(next, ""),
		"Form":   form,
		"Errors": formErrors,
	})
}

func (s *AccountHandler) SignUpPage(c *gin.Context) {
	renderSignUp(c, &dto.SignUpDTO{}, dto.FormErrors{})
}

// SignUp 注册后直接登录并回到首页
func (s *AccountHandler) SignUp(c *gin.Context) {
	form := &dto.SignUpDTO{}
	formErrors := dto.FormErrors{}
	if err := c.ShouldBind(form); err != nil {
		formErrors.Add(dto.NonFieldErrors, service.ErrParamInvalid.Error())
	} else {
		form.Normalize()
		formErrors = util.ValidateForm(form)
	}
	if formErrors.HasErrors() {
		renderSignUp(c, form, formErrors)
		return
	}

	token, _, err := s.userSvc.Register(c.Request.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrUserExist) {
			formErrors.Add("username", err.Error())
			renderSignUp(c, form, formErrors)
			return
		}
		response.Error(c, err)
		return
	}

	s.setTokenCookie(c, token)
	response.Redirect(c, "/")
}

func renderSignUp(c *gin.Context, form *dto.SignUpDTO, formErrors dto.FormErrors) {
	response.HTML(c, http.StatusOK, "signup.html", gin.H{
		"Title":  "Sign up",
		"Form":   form,
		"Errors": formErrors,
	})
}

// Logout 注销 Token 并清除 Cookie
func (s *AccountHandler) Logout(c *gin.Context) {
	if err := s.userSvc.Logout(c.Request.Context(), c.GetString(consts.CtxToken)); err != nil {
		log.WarnContext(c.Request.Context(), "blacklist token failed", "err", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.TokenCookieName, "", -1, "/", "", s.cookieSecure, true)
	response.Redirect(c, "/")
}

func (s *AccountHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.TokenCookieName, token, int(security.JWTExpirationTime.Seconds()), "/", "", s.cookieSecure, true)
}
