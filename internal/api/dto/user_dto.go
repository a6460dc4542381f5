package dto

import "strings"

// LoginDTO 登录表单
type LoginDTO struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
}

func (s *LoginDTO) Normalize() {
	s.Username = strings.TrimSpace(s.Username)
}

// SignUpDTO 注册表单
type SignUpDTO struct {
	Username        string `form:"username" validate:"required,min=3,max=150"`
	Email           string `form:"email" validate:"required,email,max=254"`
	Password        string `form:"password" validate:"required,min=6,max=128"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

func (s *SignUpDTO) Normalize() {
	s.Username = strings.TrimSpace(s.Username)
	s.Email = strings.TrimSpace(s.Email)
}

// UserDTO 当前登录用户
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}
