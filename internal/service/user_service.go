package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (string, error)
	Login(ctx context.Context, dto *dto.LoginDTO) (string, error)
	Logout(ctx context.Context, token string) error
	GetActor(ctx context.Context, id uint64) (*Actor, error)
	ListUsers(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.UserDTO], error)
	GetUserDetails(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetUserByEmail(ctx context.Context, email string) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, actor Actor, dto *dto.UpdateUserDTO) (string, error)
	DeleteUser(ctx context.Context, actor Actor, targetID uint64) error
	SetAdmin(ctx context.Context, email string, isAdmin bool) error
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	tokens    *security.TokenManager
	blacklist security.Blacklist
}

func NewUserService(userRepo repository.UserRepo, tokens *security.TokenManager, blacklist security.Blacklist) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (string, error) {
	taken, err := s.userRepo.EmailTaken(ctx, regDTO.Email, 0)
	if err != nil {
		return "", err
	}
	if taken {
		return "", FieldErrors{"email": {ErrEmailTaken.Error()}}
	}

	hashed, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Name:     regDTO.Name,
		Email:    regDTO.Email,
		Password: hashed,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.tokens.GenerateToken(user.ID)
}

func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, loginDTO.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err = security.CheckPasswordHash(loginDTO.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return s.tokens.GenerateToken(user.ID)
}

// Logout 将 Token 签名加入黑名单直至其自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return ErrUnauthenticated
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrUnauthenticated
	}

	ttl := s.tokens.TTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.blacklist.Revoke(ctx, signature, ttl)
}

// GetActor 用户不存在时返回 nil
func (s *UserServiceImpl) GetActor(ctx context.Context, id uint64) (*Actor, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return &Actor{ID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.UserDTO], error) {
	page := query.CurrentPage()
	users, total, err := s.userRepo.ListUsers(ctx, query.Keyword, page, query.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserDTO, 0, len(users))
	if err = copier.Copy(&items, &users); err != nil {
		return nil, err
	}

	return &dto.PageDTO[*dto.UserDTO]{
		CurrentPage: page,
		PerPage:     query.Limit,
		Total:       total,
		LastPage:    util.LastPage(total, query.Limit),
		Data:        items,
	}, nil
}

func (s *UserServiceImpl) GetUserDetails(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserWithPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	res := &dto.UserDTO{}
	if err = copier.Copy(res, user); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user, err = s.userRepo.GetUserWithCounts(ctx, user.ID); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	res := &dto.UserDTO{}
	if err = copier.Copy(res, user); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateUser 管理员可指定 user_id，修改自己时返回新的 Token
func (s *UserServiceImpl) UpdateUser(ctx context.Context, actor Actor, updateDTO *dto.UpdateUserDTO) (string, error) {
	targetID := actor.ID
	if updateDTO.UserID != 0 {
		targetID = updateDTO.UserID
	}

	user, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !Editable(actor, user) {
		return "", Denied("update this user")
	}

	taken, err := s.userRepo.EmailTaken(ctx, updateDTO.Email, user.ID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", FieldErrors{"email": {ErrEmailTaken.Error()}}
	}

	hashed, err := security.HashPassword(updateDTO.Password)
	if err != nil {
		return "", err
	}
	user.Name = updateDTO.Name
	user.Email = updateDTO.Email
	user.Password = hashed

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	if user.ID != actor.ID {
		return "", nil
	}
	return s.tokens.GenerateToken(user.ID)
}

// DeleteUser targetID 为 0 时删除自己，帖子和评论保留
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor Actor, targetID uint64) error {
	if targetID == 0 {
		targetID = actor.ID
	}

	user, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !Editable(actor, user) {
		return Denied("delete this user")
	}

	affected, err := s.userRepo.DeleteUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	log.InfoContext(ctx, "user deleted", "target_id", user.ID, "actor_id", actor.ID)
	return nil
}

func (s *UserServiceImpl) SetAdmin(ctx context.Context, email string, isAdmin bool) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	_, err = s.userRepo.UpdateUserIsAdmin(ctx, user.ID, isAdmin)
	return err
}
