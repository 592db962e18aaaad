package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/olekukonko/tablewriter"
)

type historyResult struct {
	Success bool                    `json:"success"`
	Data    dto.ChatHistoryResponse `json:"data"`
	Error   string                  `json:"error"`
}

func main() {
	server := flag.String("server", "http://localhost:8080/api/v1", "URL base da API")
	assistantID := flag.String("assistant", "income", "Assistente (income ou expenditure)")
	token := flag.String("token", os.Getenv("FINANCAS_TOKEN"), "Token JWT do usuário")
	format := flag.String("format", "table", "Formato de saída: table ou json")
	timeout := flag.Duration("timeout", 15*time.Second, "Tempo máximo da requisição")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	history, err := fetchHistory(ctx, http.DefaultClient, *server, *assistantID, *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao exportar histórico: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(history)
	default:
		renderTable(os.Stdout, history)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao escrever saída: %v\n", err)
		os.Exit(1)
	}
}

// fetchHistory busca o histórico do usuário dono do token para um assistente
func fetchHistory(ctx context.Context, client *http.Client, server, assistantID, token string) (*dto.ChatHistoryResponse, error) {
	if token == "" {
		return nil, errors.New("token não informado")
	}

	endpoint := strings.TrimRight(server, "/") + "/chat/" + url.PathEscape(assistantID) + "/history"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	var result historyResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("resposta inválida (HTTP %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, result.Error)
	}
	return &result.Data, nil
}

// renderTable escreve o histórico em formato de tabela
func renderTable(w io.Writer, history *dto.ChatHistoryResponse) {
	fmt.Fprintf(w, "Assistente: %s (%d mensagens)\n", history.AssistantID, len(history.Messages))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Data", "Papel", "Mensagem"})
	table.SetAutoWrapText(true)
	table.SetColWidth(80)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, m := range history.Messages {
		table.Append([]string{
			m.CreatedAt.Local().Format("02/01/2006 15:04:05"),
			m.Role,
			m.Content,
		})
	}
	table.Render()
}
