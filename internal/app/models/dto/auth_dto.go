package dto

import "github.com/yigit/coursenotes/internal/app/models"

// RegisterRequest represents registration form data
type RegisterRequest struct {
	Username string `form:"username" json:"username" binding:"required,min=3,max=64,username"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// UserResponse represents the public view of a user
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username" example:"alice"`
}

// NewUserResponse converts a user model, omitting the password hash
func NewUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{ID: user.ID, Username: user.Username}
}
