package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/amantech05/Gradlink/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type requestBody struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Status   string        `json:"status"`
	Progress fund.Progress `json:"progress"`
}

func newTestEngine(t *testing.T) (*gin.Engine, *logic.FundLogic) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepository()
	fundLogic := logic.NewFundLogic(repo)
	monitorLogic := logic.NewMonitorLogic(repo, fund.DefaultRecentWindow, fund.DefaultTopDonors)
	return Setup(fundLogic, monitorLogic), fundLogic
}

func perform(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createViaAPI(t *testing.T, r *gin.Engine, required string) requestBody {
	t.Helper()
	w, env := perform(t, r, http.MethodPost, "/api/v1/fund-requests",
		`{"requester_name":"John Doe","title":"AI Study App","description":"assistant","required_amount":`+required+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created requestBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created
}

func TestHealth(t *testing.T) {
	r, _ := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestEngine(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/fund-requests", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDonationFlow(t *testing.T) {
	r, _ := newTestEngine(t)
	created := createViaAPI(t, r, "500")
	assert.Equal(t, "active", created.Status)
	assert.True(t, decimal.Zero.Equal(created.Progress.Raised))

	path := "/api/v1/fund-requests/" + created.ID + "/donations"
	w, _ := perform(t, r, http.MethodPost, path, `{"donor_name":"Alumni A","amount":"300"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := perform(t, r, http.MethodPost, path, `{"amount":250,"message":"good luck"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var donated struct {
		FundRequest requestBody `json:"fund_request"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &donated))
	assert.Equal(t, "completed", donated.FundRequest.Status)
	assert.True(t, decimal.NewFromInt(550).Equal(donated.FundRequest.Progress.Raised))
	assert.True(t, decimal.NewFromInt(100).Equal(donated.FundRequest.Progress.Percentage))

	w, env = perform(t, r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	var donations []struct {
		DonorName string `json:"donor_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &donations))
	require.Len(t, donations, 2)
	names := []string{donations[0].DonorName, donations[1].DonorName}
	assert.ElementsMatch(t, []string{"Alumni A", "Anonymous Alumni"}, names)

	w, env = perform(t, r, http.MethodGet, "/api/v1/fund-requests?status=completed", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []requestBody
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestErrorMapping(t *testing.T) {
	r, _ := newTestEngine(t)
	created := createViaAPI(t, r, "500")
	donations := "/api/v1/fund-requests/" + created.ID + "/donations"

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"negative amount", http.MethodPost, donations, `{"amount":-10}`, http.StatusBadRequest},
		{"sub-cent amount", http.MethodPost, donations, `{"amount":"0.001"}`, http.StatusBadRequest},
		{"oversized amount", http.MethodPost, donations, `{"amount":"1000000000000"}`, http.StatusBadRequest},
		{"non-numeric amount", http.MethodPost, donations, `{"amount":"abc"}`, http.StatusBadRequest},
		{"missing title", http.MethodPost, "/api/v1/fund-requests", `{"description":"d","required_amount":5}`, http.StatusBadRequest},
		{"bad status filter", http.MethodGet, "/api/v1/fund-requests?status=archived", "", http.StatusBadRequest},
		{"unknown request", http.MethodPost, "/api/v1/fund-requests/missing/donations", `{"amount":10}`, http.StatusNotFound},
		{"unknown get", http.MethodGet, "/api/v1/fund-requests/missing", "", http.StatusNotFound},
		{"bad window", http.MethodGet, "/api/v1/donations/summary?window_days=x", "", http.StatusBadRequest},
		{"huge window", http.MethodGet, "/api/v1/donations/summary?window_days=9999999999999", "", http.StatusBadRequest},
		{"window over cap", http.MethodGet, "/api/v1/donations/summary?window_days=3651", "", http.StatusBadRequest},
		{"limit over cap", http.MethodGet, "/api/v1/donations/top-donors?limit=1001", "", http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/api/v1/donations/top-donors?limit=-1", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := perform(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestCancelConflicts(t *testing.T) {
	r, _ := newTestEngine(t)
	created := createViaAPI(t, r, "500")
	cancel := "/api/v1/fund-requests/" + created.ID + "/cancel"

	w, _ := perform(t, r, http.MethodPost, cancel, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = perform(t, r, http.MethodPost, cancel, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = perform(t, r, http.MethodPost, "/api/v1/fund-requests/"+created.ID+"/donations", `{"amount":10}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMonitoringEndpoints(t *testing.T) {
	r, fundLogic := newTestEngine(t)
	seeded, err := fundLogic.SeedDemoData(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)

	w, env := perform(t, r, http.MethodGet, "/api/v1/donations/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary fund.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 3, summary.DonationCount)
	assert.True(t, decimal.NewFromInt(350).Equal(summary.TotalAmount))

	w, env = perform(t, r, http.MethodGet, "/api/v1/donations/top-donors?limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var donors []fund.DonorTotal
	require.NoError(t, json.Unmarshal(env.Data, &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, "Alumni C", donors[0].Name)

	w, env = perform(t, r, http.MethodGet, "/api/v1/donations?bucket=medium&sort=amount", "")
	require.Equal(t, http.StatusOK, w.Code)
	var medium []struct {
		DonorName string `json:"donor_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &medium))
	require.Len(t, medium, 2)
	assert.Equal(t, "Alumni A", medium[0].DonorName)
	assert.Equal(t, "Alumni B", medium[1].DonorName)

	w, _ = perform(t, r, http.MethodGet, "/api/v1/donations/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Amount,Date,Message", lines[0])
}
