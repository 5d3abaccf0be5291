package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/api/middleware"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBind(&registerDTO); err != nil {
		response.Error(c, err, "Registration failed.")
		return
	}
	token, err := s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err, "Registration failed.")
		return
	}
	response.SuccessToken(c, response.Created, "User created successfully.", token)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err, "Login failed.")
		return
	}
	token, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err, "Login failed.")
		return
	}
	response.SuccessToken(c, response.Ok, "Login successful", token)
}

func (s *UserHandler) Logout(c *gin.Context) {
	if err := s.userSvc.Logout(c.Request.Context(), middleware.TokenFrom(c)); err != nil {
		response.Error(c, err, "Logout failed.")
		return
	}
	response.Success(c, "Logged out successfully", nil)
}

func (s *UserHandler) Index(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch users.")
		return
	}
	page, err := s.userSvc.ListUsers(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err, "Failed to fetch users.")
		return
	}
	response.Success(c, "Users fetched successfully.", page)
}

func (s *UserHandler) Details(c *gin.Context) {
	var query dto.UserDetailsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch user.")
		return
	}
	user, err := s.userSvc.GetUserDetails(c.Request.Context(), query.UserID)
	if err != nil {
		response.Error(c, err, "Failed to fetch user.")
		return
	}
	response.Success(c, "User fetched successfully.", user)
}

func (s *UserHandler) Update(c *gin.Context) {
	var updateDTO dto.UpdateUserDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err, "Failed to update user.")
		return
	}
	token, err := s.userSvc.UpdateUser(c.Request.Context(), middleware.ActorFrom(c), &updateDTO)
	if err != nil {
		response.Error(c, err, "Failed to update user.")
		return
	}
	if token == "" {
		response.Success(c, "User updated successfully.", nil)
		return
	}
	response.SuccessToken(c, response.Ok, "User updated successfully.", token)
}

func (s *UserHandler) Destroy(c *gin.Context) {
	var destroyDTO dto.DestroyUserDTO
	if err := c.ShouldBind(&destroyDTO); err != nil {
		response.Error(c, err, "Failed to delete user.")
		return
	}
	if err := s.userSvc.DeleteUser(c.Request.Context(), middleware.ActorFrom(c), destroyDTO.UserID); err != nil {
		response.Error(c, err, "Failed to delete user.")
		return
	}
	response.Success(c, "User deleted successfully.", nil)
}
