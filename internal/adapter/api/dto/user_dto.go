package dto

import (
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/samber/lo"
)

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserListResponse converte uma página de usuários do domínio para DTO de resposta paginada
func ToUserListResponse(users []*user.User, totalCount int, p Pagination) PageResponse {
	data := lo.Map(users, func(u *user.User, _ int) UserResponse {
		return ToUserResponse(u)
	})
	return NewPageResponse(data, totalCount, p)
}
