package mapper

import (
	"notes-app-be/internal/entity"
	"notes-app-be/internal/model"

	"github.com/google/uuid"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	id, _ := uuid.Parse(u.Id)
	return &entity.User{
		Id:           id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GoogleId:     u.GoogleId,
		Otp:          u.Otp,
		OtpExpiresAt: u.OtpExpiresAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id.String(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GoogleId:     u.GoogleId,
		Otp:          u.Otp,
		OtpExpiresAt: u.OtpExpiresAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
