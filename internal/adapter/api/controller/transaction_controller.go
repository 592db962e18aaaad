package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/transaction"
	"github.com/hugohenrick/financas-pessoais/pkg/logger"
)

const messageTransactionNotFound = "Transaction not found"

// TransactionController gerencia as transações do usuário autenticado
type TransactionController struct {
	transactionRepository transaction.Repository
	logger                logger.Logger
}

// NewTransactionController cria uma nova instância de TransactionController
func NewTransactionController(transactionRepository transaction.Repository, log logger.Logger) *TransactionController {
	return &TransactionController{
		transactionRepository: transactionRepository,
		logger:                log,
	}
}

// Create registra uma nova transação
// @Summary Registra uma transação
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.TransactionRequest true "Dados da transação"
// @Success 201 {object} dto.Result{data=dto.TransactionResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /transactions [post]
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var request dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid request body"))
		return
	}

	tx, err := transaction.NewTransaction(userID, transaction.Type(request.Type), request.Amount, request.Category, request.Description, request.OccurredAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult(err.Error()))
		return
	}

	if err := c.transactionRepository.Create(ctx.Request.Context(), tx); err != nil {
		c.logger.Error("Erro ao criar transação", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to create transaction"))
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResult(dto.ToTransactionResponse(tx)))
}

// List lista as transações com filtros e paginação
// @Summary Lista transações
// @Tags transactions
// @Produce json
// @Param type query string false "income ou expense"
// @Param from query string false "Data inicial (AAAA-MM-DD)"
// @Param to query string false "Data final (AAAA-MM-DD)"
// @Param page query int false "Número da página" default(1)
// @Param page_size query int false "Tamanho da página" default(20)
// @Success 200 {object} dto.Result{data=dto.PageResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /transactions [get]
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query dto.TransactionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid query parameters"))
		return
	}
	pagination := dto.GetPagination(query.Page, query.PageSize)
	filter := query.ToFilter(pagination)

	txs, err := c.transactionRepository.List(ctx.Request.Context(), userID, filter)
	if err != nil {
		c.logger.Error("Erro ao listar transações", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to list transactions"))
		return
	}

	total, err := c.transactionRepository.Count(ctx.Request.Context(), userID, filter)
	if err != nil {
		c.logger.Error("Erro ao contar transações", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to list transactions"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToTransactionListResponse(txs, total, pagination)))
}

// Summary consolida as transações do período
// @Summary Resumo das transações
// @Description Totais de receitas, despesas, saldo e totais por categoria
// @Tags transactions
// @Produce json
// @Param type query string false "income ou expense"
// @Param from query string false "Data inicial (AAAA-MM-DD)"
// @Param to query string false "Data final (AAAA-MM-DD)"
// @Success 200 {object} dto.Result{data=transaction.Summary}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /transactions/summary [get]
func (c *TransactionController) Summary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query dto.TransactionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid query parameters"))
		return
	}
	// sem paginação: o resumo considera todo o período
	filter := query.ToFilter(dto.Pagination{Page: 1})

	txs, err := c.transactionRepository.List(ctx.Request.Context(), userID, filter)
	if err != nil {
		c.logger.Error("Erro ao resumir transações", "error", err, "user_id", userID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult("Failed to summarize transactions"))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(transaction.Summarize(txs)))
}

// Get busca uma transação pelo ID
// @Summary Busca uma transação
// @Tags transactions
// @Produce json
// @Param id path string true "ID da transação"
// @Success 200 {object} dto.Result{data=dto.TransactionResponse}
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	tx, err := c.transactionRepository.FindByID(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.writeError(ctx, err, userID, "Failed to load transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToTransactionResponse(tx)))
}

// Update atualiza uma transação
// @Summary Atualiza uma transação
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "ID da transação"
// @Param transaction body dto.TransactionRequest true "Dados da transação"
// @Success 200 {object} dto.Result{data=dto.TransactionResponse}
// @Failure 400 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var request dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult("Invalid request body"))
		return
	}

	tx, err := c.transactionRepository.FindByID(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.writeError(ctx, err, userID, "Failed to update transaction")
		return
	}

	if err := tx.Update(transaction.Type(request.Type), request.Amount, request.Category, request.Description, request.OccurredAt); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResult(err.Error()))
		return
	}

	if err := c.transactionRepository.Update(ctx.Request.Context(), tx); err != nil {
		c.writeError(ctx, err, userID, "Failed to update transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(dto.ToTransactionResponse(tx)))
}

// Delete remove uma transação
// @Summary Remove uma transação
// @Tags transactions
// @Produce json
// @Param id path string true "ID da transação"
// @Success 200 {object} dto.Result
// @Failure 401 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Failure 500 {object} dto.Result
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.transactionRepository.Delete(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		c.writeError(ctx, err, userID, "Failed to delete transaction")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResult(nil))
}

func (c *TransactionController) writeError(ctx *gin.Context, err error, userID, message string) {
	if errors.Is(err, transaction.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResult(messageTransactionNotFound))
		return
	}
	c.logger.Error(message, "error", err, "user_id", userID, "transaction_id", ctx.Param("id"))
	ctx.JSON(http.StatusInternalServerError, dto.NewErrorResult(message))
}
