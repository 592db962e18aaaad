package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/user"
	"github.com/hugohenrick/financas-pessoais/pkg/auth"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

const messageInvalidCredentials = "Invalid email or password"

// TokenIssuer gera e renova tokens de acesso
type TokenIssuer interface {
	GenerateToken(u *user.User) (string, error)
	RefreshToken(token string) (string, error)
	Expiration() time.Duration
}

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	tokens         TokenIssuer
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(userRepository user.Repository, tokens TokenIssuer, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		tokens:         tokens,
		logger:         log,
	}
}

// Register cadastra um novo usuário e já devolve um token
// @Summary Cadastra um usuário
// @Description Cria uma conta e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Dados do usuário"
// @Success 201 {object} dto.Result{data=dto.LoginResponse}
// @Failure 400 {object} dto.Result
// @Failure 409 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid request body"))
		return
	}

	u, err := user.NewUser(request.Name, request.Email, request.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult(err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx.Request.Context(), u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResult("Email already registered"))
			return
		}
		c.logger.Error("Erro ao criar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to create user"))
		return
	}

	c.logger.Info("Usuário cadastrado", "user_id", u.ID)
	c.respondWithToken(ctx, http.StatusCreated, u)
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.Result{data=dto.LoginResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 403 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid request body"))
		return
	}

	// Buscar o usuário pelo email
	u, err := c.userRepository.FindByEmail(ctx.Request.Context(), strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult(messageInvalidCredentials))
			return
		}
		c.logger.Error("Erro ao buscar usuário", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to authenticate user"))
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult(messageInvalidCredentials))
		return
	}

	if !u.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResult("Account is blocked"))
		return
	}

	// Falha ao registrar o último login não impede o login
	if err := c.userRepository.UpdateLastLogin(ctx.Request.Context(), u.ID); err != nil {
		c.logger.Warn("Erro ao atualizar último login", "error", err, "user_id", u.ID)
	}

	c.respondWithToken(ctx, http.StatusOK, u)
}

// Me retorna o usuário autenticado
// @Summary Usuário autenticado
// @Tags auth
// @Produce json
// @Success 200 {object} dto.Result{data=dto.UserResponse}
// @Failure 401 {object} dto.Result
// @Security BearerAuth
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	principal, ok := auth.GetCurrentPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult(auth.MessageNotAuthenticated))
		return
	}

	u, err := c.userRepository.FindByID(ctx.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult(auth.MessageNotAuthenticated))
			return
		}
		c.logger.Error("Erro ao buscar usuário", "error", err, "user_id", principal.UserID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to load user"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToUserResponse(u)))
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Description Renova um token JWT ainda válido
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.Result{data=dto.RefreshTokenResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Router /auth/refresh-token [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid request body"))
		return
	}

	token, err := c.tokens.RefreshToken(request.RefreshToken)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResult("Invalid token"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.RefreshTokenResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(c.tokens.Expiration()).UTC(),
	}))
}

func (c *AuthController) respondWithToken(ctx *gin.Context, status int, u *user.User) {
	token, err := c.tokens.GenerateToken(u)
	if err != nil {
		c.logger.Error("Erro ao gerar token", "error", err, "user_id", u.ID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to generate token"))
		return
	}

	ctx.JSON(status, dto.NewSuccessResult(dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(c.tokens.Expiration()).UTC(),
	}))
}
