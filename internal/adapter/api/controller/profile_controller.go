package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/profile"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

// ProfileController gerencia o perfil financeiro do usuário autenticado
type ProfileController struct {
	profileRepository profile.Repository
	logger            logger.Logger
}

// NewProfileController cria uma nova instância de ProfileController
func NewProfileController(profileRepository profile.Repository, log logger.Logger) *ProfileController {
	return &ProfileController{
		profileRepository: profileRepository,
		logger:            log,
	}
}

// Get retorna o perfil financeiro
// @Summary Perfil financeiro
// @Tags profile
// @Produce json
// @Success 200 {object} dto.Result{data=dto.ProfileResponse}
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	p, err := c.profileRepository.FindByUserID(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResult("Financial profile not found"))
			return
		}
		c.logger.Error("Erro ao buscar perfil financeiro", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to load financial profile"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToProfileResponse(p)))
}

// Put cria ou substitui o perfil financeiro
// @Summary Atualiza o perfil financeiro
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.ProfileRequest true "Perfil financeiro"
// @Success 200 {object} dto.Result{data=dto.ProfileResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /profile [put]
func (c *ProfileController) Put(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var request dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid request body"))
		return
	}

	p, err := profile.NewFinancialProfile(userID, request.MonthlyIncome, request.MonthlyBudget, request.SavingsGoal, request.Currency, request.Occupation)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult(err.Error()))
		return
	}

	if err := c.profileRepository.Upsert(ctx.Request.Context(), p); err != nil {
		c.logger.Error("Erro ao salvar perfil financeiro", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to save financial profile"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToProfileResponse(p)))
}
