package types

import (
	"account-core/app/server/models"

	validation "github.com/go-ozzo/ozzo-validation"
)

type ProfileUpdateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	University string `json:"university"`
	Year       int    `json:"year"`
	Speciality string `json:"speciality"`
	Department string `json:"department"`
	Degree     string `json:"degree"`
	Role       string `json:"role"`

	// 可选的密码修改通道：强制重置状态下不需要 current_password
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

func (r ProfileUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.University, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Year, validation.Required, validation.Min(1900), validation.Max(2100)),
		validation.Field(&r.Speciality, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Department, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Degree, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Role, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.NewPassword, validation.Length(5, 100)),
	)
}

type ProfileResponse struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	University string `json:"university"`
	Year       int    `json:"year"`
	Role       string `json:"role"`
	Speciality string `json:"speciality"`
	Department string `json:"department"`
	Degree     string `json:"degree"`
}

type UserResponse struct {
	ID               uint             `json:"id"`
	Username         string           `json:"username"`
	IsAdmin          bool             `json:"is_admin"`
	IsActive         bool             `json:"is_active"`
	HasPasswordReset bool             `json:"has_password_reset"`
	IsAkg            bool             `json:"is_akg"`
	Group            string           `json:"group"`
	Profile          *ProfileResponse `json:"profile,omitempty"`
}

type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type BlockResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewProfileResponse(profile *models.Profile) *ProfileResponse {
	if profile == nil {
		return nil
	}

	return &ProfileResponse{
		ID:         profile.ID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		University: profile.University,
		Year:       profile.Year,
		Role:       profile.Role,
		Speciality: profile.Speciality,
		Department: profile.Department,
		Degree:     profile.Degree,
	}
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		IsAdmin:          user.IsAdmin,
		IsActive:         user.IsActive,
		HasPasswordReset: user.HasPasswordReset,
		IsAkg:            user.IsAkg,
		Group:            user.Group,
		Profile:          NewProfileResponse(user.Profile),
	}
}
