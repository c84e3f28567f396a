package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/jobmarket-backend/internal/config"
	"github.com/ignatzorin/jobmarket-backend/internal/http/router"
	"github.com/ignatzorin/jobmarket-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/handler"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/service"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/account"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/bid"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/catalog"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/job"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Silence()
	os.Exit(m.Run())
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Meta    *response.Meta      `json:"meta"`
	Error   *response.ErrorInfo `json:"error"`
}

type api struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T, rateLimit int64) *api {
	t.Helper()

	store := memory.New()
	tokens := service.NewTokenManager("test-secret", time.Hour)
	hasher := service.NewPasswordHasher(4)
	cfg := &config.Config{
		Env:             "test",
		StorageDriver:   config.StorageDriverMemory,
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitLimit:  rateLimit,
		RateLimitPeriod: time.Minute,
	}

	h := router.Handlers{
		Auth: handler.NewAuthHandler(
			account.NewRegisterCustomerUseCase(store.Customers(), hasher),
			account.NewRegisterVendorUseCase(store.Vendors(), hasher),
			account.NewCustomerLoginUseCase(store.Customers(), hasher, tokens),
			account.NewVendorLoginUseCase(store.Vendors(), hasher, tokens),
		),
		Catalog: handler.NewCatalogHandler(catalog.NewListTreeUseCase(store.JobItems()), catalog.NewCreateItemUseCase(store.JobItems())),
		Job: handler.NewJobHandler(
			job.NewCreateJobUseCase(store.Jobs(), catalog.NewResolveTaskUseCase(store.JobItems())),
			job.NewListJobsUseCase(store.Jobs()),
			job.NewGetJobUseCase(store.Jobs()),
			job.NewCancelJobUseCase(store.Jobs()),
			job.NewListOpenJobsUseCase(store.Jobs()),
			job.NewStartWorkUseCase(store.Jobs()),
			job.NewMarkCompletedUseCase(store.Jobs()),
		),
		Bid: handler.NewBidHandler(
			bid.NewPlaceBidUseCase(store),
			bid.NewListJobBidsUseCase(store.Jobs(), store.Bids()),
			bid.NewListMyBidsUseCase(store.Bids()),
			bid.NewAcceptBidUseCase(store),
			bid.NewRejectBidUseCase(store),
			bid.NewWithdrawBidUseCase(store),
		),
		Health: handler.NewHealthHandler(store, config.StorageDriverMemory),
	}

	engine, err := router.SetupRouter(cfg, h, tokens)
	require.NoError(t, err)
	return &api{t: t, engine: engine}
}

func (a *api) do(method, path, token string, body interface{}) (int, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

type idOnly struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// signUp registers and logs in an account and returns its id and token.
func (a *api) signUp(role, name, phone string) (string, string) {
	a.t.Helper()
	creds := map[string]string{"name": name, "phone": phone, "password": "plumber42"}

	code, env := a.do(http.MethodPost, "/api/auth/"+role+"/register", "", creds)
	require.Equal(a.t, http.StatusCreated, code, env.Error)

	code, env = a.do(http.MethodPost, "/api/auth/"+role+"/login", "", map[string]string{"phone": phone, "password": "plumber42"})
	require.Equal(a.t, http.StatusOK, code, env.Error)

	auth := decode[struct {
		AccessToken string `json:"accessToken"`
		Profile     idOnly `json:"profile"`
	}](a.t, env)
	return auth.Profile.ID, auth.AccessToken
}

// seedPlumbing creates Home Repair > Plumbing and returns the task id.
func (a *api) seedPlumbing(customerToken string) string {
	a.t.Helper()

	code, env := a.do(http.MethodPost, "/api/job-items", customerToken, map[string]string{
		"name": "Home Repair", "slug": "home-repair", "kind": "category",
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	category := decode[idOnly](a.t, env)

	code, env = a.do(http.MethodPost, "/api/job-items", customerToken, map[string]string{
		"name": "Plumbing", "slug": "plumbing", "kind": "sub-category", "parentId": category.ID,
	})
	require.Equal(a.t, http.StatusCreated, code, env.Error)
	return decode[idOnly](a.t, env).ID
}

func TestMarketplaceFlow(t *testing.T) {
	a := newAPI(t, 100)

	_, customerToken := a.signUp("customers", "Asha", "9876543210")
	v1ID, v1Token := a.signUp("vendors", "Ravi", "9000000001")
	v2ID, v2Token := a.signUp("vendors", "Meena", "9000000002")
	taskID := a.seedPlumbing(customerToken)

	code, env := a.do(http.MethodGet, "/api/job-items", "", nil)
	require.Equal(t, http.StatusOK, code)
	tree := decode[[]struct {
		Name  string   `json:"name"`
		Tasks []idOnly `json:"tasks"`
	}](t, env)
	require.Len(t, tree, 1)
	assert.Equal(t, "Home Repair", tree[0].Name)
	assert.Len(t, tree[0].Tasks, 1)

	code, env = a.do(http.MethodPost, "/api/jobs", customerToken, map[string]string{
		"jobTaskId": taskID, "city": "Pune", "scheduledDate": "2026-11-02", "scheduledTime": "09:30",
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	created := decode[idOnly](t, env)
	assert.Equal(t, "open", created.Status)
	jobPath := "/api/jobs/" + created.ID

	code, env = a.do(http.MethodGet, "/api/vendor/jobs", v1Token, nil)
	require.Equal(t, http.StatusOK, code)
	open := decode[[]struct {
		ID            string `json:"id"`
		JobTask       string `json:"jobTask"`
		Category      string `json:"category"`
		ScheduledDate string `json:"scheduledDate"`
		Owner         struct {
			Name string `json:"name"`
		} `json:"owner"`
	}](t, env)
	require.Len(t, open, 1)
	assert.Equal(t, "Plumbing", open[0].JobTask)
	assert.Equal(t, "Home Repair", open[0].Category)
	assert.Equal(t, "Asha", open[0].Owner.Name)
	assert.Equal(t, "2026-11-02", open[0].ScheduledDate)

	bidPath := "/api/vendor/jobs/" + created.ID + "/bids"
	code, env = a.do(http.MethodPost, bidPath, v1Token, map[string]interface{}{"amount": 1500, "message": "can come tomorrow"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	first := decode[struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
	}](t, env)
	assert.Equal(t, "1500.00", first.Amount)

	code, env = a.do(http.MethodPost, bidPath, v2Token, map[string]interface{}{"amount": "1400.50"})
	require.Equal(t, http.StatusCreated, code, env.Error)
	winner := decode[idOnly](t, env)

	// re-bid overwrites the same row
	code, env = a.do(http.MethodPost, bidPath, v1Token, map[string]interface{}{"amount": 1450})
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, first.ID, decode[idOnly](t, env).ID)

	code, env = a.do(http.MethodGet, jobPath+"/bids", customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]idOnly](t, env), 2)

	code, env = a.do(http.MethodPost, "/api/bids/"+winner.ID+"/accept", customerToken, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "accepted", decode[idOnly](t, env).Status)

	code, env = a.do(http.MethodGet, jobPath, customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	assigned := decode[struct {
		Status           string `json:"status"`
		AssignedVendorID string `json:"assignedVendorId"`
		TaskName         string `json:"taskName"`
	}](t, env)
	assert.Equal(t, "assigned", assigned.Status)
	assert.Equal(t, v2ID, assigned.AssignedVendorID)
	assert.Equal(t, "Plumbing", assigned.TaskName)

	code, env = a.do(http.MethodGet, "/api/vendor/bids", v1Token, nil)
	require.Equal(t, http.StatusOK, code)
	mine := decode[[]struct {
		Status   string `json:"status"`
		VendorID string `json:"vendorId"`
		Job      struct {
			Status string `json:"status"`
		} `json:"job"`
	}](t, env)
	require.Len(t, mine, 1)
	assert.Equal(t, "rejected", mine[0].Status)
	assert.Equal(t, v1ID, mine[0].VendorID)
	assert.Equal(t, "assigned", mine[0].Job.Status)

	code, env = a.do(http.MethodPost, bidPath, v1Token, map[string]interface{}{"amount": 1000})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Bidding closed for this job", env.Error.Message)

	code, _ = a.do(http.MethodPost, "/api/vendor/jobs/"+created.ID+"/complete", v1Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = a.do(http.MethodPost, "/api/vendor/jobs/"+created.ID+"/start", v2Token, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "in_progress", decode[idOnly](t, env).Status)

	code, env = a.do(http.MethodPost, "/api/vendor/jobs/"+created.ID+"/complete", v2Token, nil)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "completed", decode[idOnly](t, env).Status)

	code, env = a.do(http.MethodPost, jobPath+"/cancel", customerToken, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	code, env = a.do(http.MethodGet, "/api/jobs?pageSize=50", customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, response.Meta{Page: 1, PageSize: 20, Total: 1, TotalPages: 1}, *env.Meta)
}

func TestRoleGuards(t *testing.T) {
	a := newAPI(t, 100)
	_, customerToken := a.signUp("customers", "Asha", "9876543210")
	_, vendorToken := a.signUp("vendors", "Ravi", "9000000001")

	code, env := a.do(http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	code, _ = a.do(http.MethodGet, "/api/jobs", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = a.do(http.MethodGet, "/api/jobs", vendorToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	code, _ = a.do(http.MethodGet, "/api/vendor/jobs", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// a vendor cannot log in through the customer path
	code, _ = a.do(http.MethodPost, "/api/auth/customers/login", "", map[string]string{"phone": "9000000001", "password": "plumber42"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequestValidation(t *testing.T) {
	a := newAPI(t, 100)
	_, customerToken := a.signUp("customers", "Asha", "9876543210")
	_, otherToken := a.signUp("customers", "Kiran", "9876543211")
	_, vendorToken := a.signUp("vendors", "Ravi", "9000000001")
	taskID := a.seedPlumbing(customerToken)

	code, env := a.do(http.MethodPost, "/api/jobs", customerToken, map[string]string{"jobTaskId": taskID})
	require.Equal(t, http.StatusCreated, code, env.Error)
	jobID := decode[idOnly](t, env).ID

	code, env = a.do(http.MethodPost, "/api/jobs", customerToken, map[string]string{"jobTaskId": taskID, "scheduledTime": "25:00"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, _ = a.do(http.MethodPost, "/api/vendor/jobs/"+jobID+"/bids", vendorToken, map[string]interface{}{"amount": "15.001"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = a.do(http.MethodGet, "/api/jobs/not-a-uuid", customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)

	code, env = a.do(http.MethodGet, "/api/jobs/"+jobID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = a.do(http.MethodGet, "/api/jobs/"+jobID+"/bids", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = a.do(http.MethodGet, "/api/jobs?sort=sideways", customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = a.do(http.MethodPost, "/api/auth/customers/register", "", map[string]string{"name": "Asha", "phone": "9876543210", "password": "plumber42"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestAuthRateLimit(t *testing.T) {
	a := newAPI(t, 2)
	body := map[string]string{"phone": "9876543210", "password": "plumber42"}

	for i := 0; i < 2; i++ {
		code, _ := a.do(http.MethodPost, "/api/auth/customers/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, code)
	}
	code, env := a.do(http.MethodPost, "/api/auth/customers/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
}

func TestHealthAndCORS(t *testing.T) {
	a := newAPI(t, 100)

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
