package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDetail represents user information returned in responses
type UserDetail struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Blocked bool   `json:"blocked"`
}

// UpdateProfileRequest changes the caller's own account
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// BlockUserRequest toggles the blocked flag of an account
type BlockUserRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Blocked *bool  `json:"blocked" binding:"required"`
}

func userDetail(u *User) UserDetail {
	return UserDetail{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		Blocked: u.Blocked,
	}
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user User
	if err := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if err := VerifyPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if user.Blocked {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account is blocked"})
		return
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) getCurrentUser(c *gin.Context) {
	session, _ := GetSessionData(c)

	var user User
	if err := FindByID(s.db, session.UserID, &user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, userDetail(&user))
}

func (s *Server) updateProfile(c *gin.Context) {
	session, _ := GetSessionData(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(req.Email)
	var existing User
	err := s.db.Where("email = ? AND id <> ?", email, session.UserID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).Msg("Failed to check email")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	updates := map[string]any{"name": req.Name, "email": email}
	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
			return
		}
		updates["password_hash"] = hash
	}

	if err := s.db.Model(&User{}).Where("id = ?", session.UserID).Updates(updates).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func (s *Server) listUsers(c *gin.Context) {
	var users []User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list users"})
		return
	}

	resp := make([]UserDetail, 0, len(users))
	for i := range users {
		resp = append(resp, userDetail(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) blockUser(c *gin.Context) {
	session, _ := GetSessionData(c)

	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.UserID == session.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot block yourself"})
		return
	}

	result := s.db.Model(&User{}).Where("id = ?", req.UserID).Update("blocked", *req.Blocked)
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to block user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}
