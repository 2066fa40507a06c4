package transaction_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	txHandler "github.com/lbarreto/equifinance/internal/http/transaction"
	"github.com/lbarreto/equifinance/internal/http/viewer"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
	"github.com/lbarreto/equifinance/internal/transaction/store"
)

func newRouter() (chi.Router, *transaction.Service) {
	svc := transaction.NewService(store.New(), participant.Default())

	r := chi.NewRouter()
	r.Route("/transactions", txHandler.NewHandler(svc).Routes)

	return r, svc
}

func postJSON(t *testing.T, router chi.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	router, _ := newRouter()

	rec := postJSON(t, router, "/transactions", `{
		"amount": "42.50",
		"type": "expense",
		"category": "Moradia",
		"date": "2024-05-01",
		"owner": "leo",
		"scope": "SHARED",
		"card": {"installments": 3}
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID     int64  `json:"id"`
		Amount string `json:"amount"`
		Scope  string `json:"scope"`
		Card   *struct {
			Installments int    `json:"installments"`
			StartDate    string `json:"start_date"`
		} `json:"card"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "42.5", resp.Amount)
	assert.Equal(t, "SHARED", resp.Scope)
	require.NotNil(t, resp.Card)
	assert.Equal(t, 3, resp.Card.Installments)
	assert.Equal(t, "2024-05-01", resp.Card.StartDate)
}

func TestHandler_Create_Invalid(t *testing.T) {
	type testCase struct {
		name string
		body string
	}

	tests := []testCase{
		{name: "BadJSON", body: `{`},
		{name: "BadAmount", body: `{"amount":"dez","type":"expense","date":"2024-05-01","owner":"leo","scope":"SHARED"}`},
		{name: "NegativeAmount", body: `{"amount":"-1","type":"expense","date":"2024-05-01","owner":"leo","scope":"SHARED"}`},
		{name: "BadDate", body: `{"amount":"1","type":"expense","date":"01/05/2024","owner":"leo","scope":"SHARED"}`},
		{name: "UnknownOwner", body: `{"amount":"1","type":"expense","date":"2024-05-01","owner":"intruso","scope":"SHARED"}`},
		{name: "BadScope", body: `{"amount":"1","type":"expense","date":"2024-05-01","owner":"leo","scope":"PUBLIC"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter()

			rec := postJSON(t, router, "/transactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_List_VisibilityAndOrder(t *testing.T) {
	router, _ := newRouter()

	// Appended oldest to newest; the list comes back newest first.
	for _, body := range []string{
		`{"amount":"10","type":"expense","category":"Lazer","date":"2024-05-01","owner":"leo","scope":"PRIVATE"}`,
		`{"amount":"20","type":"expense","category":"Saúde","date":"2024-05-02","owner":"cris","scope":"PRIVATE"}`,
		`{"amount":"30","type":"expense","category":"Moradia","date":"2024-06-03","owner":"leo","scope":"SHARED"}`,
	} {
		require.Equal(t, http.StatusCreated, postJSON(t, router, "/transactions", body).Code)
	}

	list := func(viewerID, query string) []struct {
		ID    int64  `json:"id"`
		Scope string `json:"scope"`
		Owner string `json:"owner"`
	} {
		req := httptest.NewRequest(http.MethodGet, "/transactions"+query, nil)
		req.Header.Set(viewer.Header, viewerID)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var out []struct {
			ID    int64  `json:"id"`
			Scope string `json:"scope"`
			Owner string `json:"owner"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

		return out
	}

	leoList := list("leo", "")
	require.Len(t, leoList, 2)
	assert.Equal(t, int64(3), leoList[0].ID) // newest first
	assert.Equal(t, int64(1), leoList[1].ID)

	crisList := list("cris", "")
	require.Len(t, crisList, 2)
	assert.Equal(t, int64(3), crisList[0].ID)
	assert.Equal(t, int64(2), crisList[1].ID)

	mayOnly := list("leo", "?month=2024-05")
	require.Len(t, mayOnly, 1)
	assert.Equal(t, int64(1), mayOnly[0].ID)
}

func TestHandler_List_ViewerRequired(t *testing.T) {
	router, _ := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/transactions", nil)
	req.Header.Set(viewer.Header, "intruso")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
