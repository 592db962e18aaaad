package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/financas-pessoais/internal/adapter/api/dto"
	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/stretchr/testify/require"
)

func TestAssistantController(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	c := NewAssistantController(assistant.Default())
	router := gin.New()
	router.GET("/assistants", c.List)
	router.GET("/assistants/:id", c.Get)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assistants", nil))
	req.Equal(http.StatusOK, w.Code)

	var list struct {
		Data []dto.AssistantResponse `json:"data"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	req.Len(list.Data, 2)
	req.NotContains(w.Body.String(), "system_prompt")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assistants/Expenditure", nil))
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), `"id":"expenditure"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assistants/savings", nil))
	req.Equal(http.StatusNotFound, w.Code)
	req.JSONEq(`{"success":false,"error":"Unknown assistant"}`, w.Body.String())
}
