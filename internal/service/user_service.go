package service

import (
	"Planting/internal/api/dto"
	"Planting/internal/model"
	"Planting/internal/pkg/consts"
	"Planting/internal/pkg/redis"
	"Planting/internal/pkg/security"
	"Planting/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

type UserService interface {
	Register(ctx context.Context, form *dto.SignUpDTO) (string, *dto.UserDTO, error)
	Login(ctx context.Context, form *dto.LoginDTO) (string, *dto.UserDTO, error)
	Logout(ctx context.Context, token string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// Register 注册成功后直接登录
func (s *userServiceImpl) Register(ctx context.Context, form *dto.SignUpDTO) (string, *dto.UserDTO, error) {
	exist, err := s.userRepo.GetUserByUsername(ctx, form.Username)
	if err != nil {
		return "", nil, err
	}
	if exist != nil {
		return "", nil, ErrUserExist
	}

	hashed, err := security.HashPassword(form.Password)
	if err != nil {
		return "", nil, err
	}

	user := &model.User{
		Username: form.Username,
		Email:    form.Email,
		Password: hashed,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return "", nil, ErrUserExist
		}
		return "", nil, err
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.issueToken(user)
}

func (s *userServiceImpl) Login(ctx context.Context, form *dto.LoginDTO) (string, *dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, form.Username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrPasswordIncorrect
	}

	if err = security.CheckPasswordHash(form.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return "", nil, ErrPasswordIncorrect
		}
		return "", nil, err
	}

	return s.issueToken(user)
}

// Logout 把 Token 签名加入黑名单，直到 Token 自然过期
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, 1, security.JWTExpirationTime)
}

func (s *userServiceImpl) issueToken(user *model.User) (string, *dto.UserDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, &dto.UserDTO{ID: user.ID, Username: user.Username}, nil
}
