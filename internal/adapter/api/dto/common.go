package dto

// Result é o envelope padrão das respostas da API: {success, data?, error?}
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResult cria uma resposta de sucesso
func NewSuccessResult(data interface{}) Result {
	return Result{
		Success: true,
		Data:    data,
	}
}

// NewErrorResult cria uma resposta de erro com uma mensagem segura para o cliente
func NewErrorResult(message string) Result {
	return Result{
		Success: false,
		Error:   message,
	}
}

// Pagination representa a estrutura de paginação
type Pagination struct {
	Page     int
	PageSize int
}

// Offset retorna o deslocamento correspondente à página
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// GetPagination retorna uma estrutura de paginação com valores padrão
func GetPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// PageResponse representa uma lista paginada
type PageResponse struct {
	Items      interface{} `json:"items"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageResponse cria uma lista paginada calculando o total de páginas
func NewPageResponse(items interface{}, totalCount int, p Pagination) PageResponse {
	return PageResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(totalCount, p.PageSize),
	}
}

// calculateTotalPages calcula o número total de páginas com base no total de registros e no tamanho da página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}
