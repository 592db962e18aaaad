package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrEmptyEmail    = errors.New("email não pode ser vazio")
	ErrShortPassword = errors.New("senha deve ter pelo menos 8 caracteres")
)

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

// Constantes para Role
const (
	RoleAdmin  Role = "admin"  // Administrador da plataforma
	RoleMember Role = "member" // Usuário comum
)

// Constantes para Status
const (
	StatusActive  Status = "active"  // Usuário ativo
	StatusBlocked Status = "blocked" // Usuário bloqueado
)

// User representa um usuário da aplicação
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUser cria um novo usuário ativo com a senha já convertida em hash
func NewUser(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" {
		return nil, ErrEmptyEmail
	}

	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      RoleMember,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrShortPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
