package importcsv_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	importHandler "github.com/lbarreto/equifinance/internal/http/importcsv"
	"github.com/lbarreto/equifinance/internal/importer"
	"github.com/lbarreto/equifinance/internal/participant"
	"github.com/lbarreto/equifinance/internal/transaction"
	"github.com/lbarreto/equifinance/internal/transaction/store"
)

func newRouter() (chi.Router, *transaction.Service) {
	txSvc := transaction.NewService(store.New(), participant.Default())

	r := chi.NewRouter()
	r.Route("/import", importHandler.NewHandler(importer.NewService(), txSvc).Routes)

	return r, txSvc
}

func uploadCSV(t *testing.T, router chi.Router, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "movimentos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

const sampleCSV = "Data;Valor;Tipo;Categoria;Dono;Escopo;Parcelas\n" +
	"01/06/2024;R$ 1.250,00;gasto;Moradia;leo;compartilhado;\n" +
	"02/06/2024;45,90;gasto;Lazer;cris;privado;3\n"

func TestHandler_Preview(t *testing.T) {
	router, txSvc := newRouter()

	rec := uploadCSV(t, router, sampleCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Rows []struct {
			Amount       string `json:"amount"`
			Type         string `json:"type"`
			Date         string `json:"date"`
			Owner        string `json:"owner"`
			Scope        string `json:"scope"`
			Installments int    `json:"installments"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "1250", resp.Rows[0].Amount)
	assert.Equal(t, "2024-06-01", resp.Rows[0].Date)
	assert.Equal(t, "SHARED", resp.Rows[0].Scope)
	assert.Equal(t, 3, resp.Rows[1].Installments)

	// Preview never writes to the ledger.
	txs, err := txSvc.All(t.Context())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestHandler_Preview_MissingFile(t *testing.T) {
	router, _ := newRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("format", "planilha"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Preview_BadRow(t *testing.T) {
	router, _ := newRouter()

	rec := uploadCSV(t, router, "Data;Valor;Tipo;Categoria;Dono;Escopo;Parcelas\n01/06/2024;oops;gasto;;leo;compartilhado;\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Confirm(t *testing.T) {
	router, txSvc := newRouter()

	body := `{"rows":[
		{"amount":"1250","type":"expense","category":"Moradia","date":"2024-06-01","owner":"leo","scope":"SHARED"},
		{"amount":"45.9","type":"expense","category":"Lazer","date":"2024-06-02","owner":"cris","scope":"PRIVATE","installments":3}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Imported)

	txs, err := txSvc.All(t.Context())
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.NotNil(t, txs[0].Card)
	assert.Equal(t, 3, txs[0].Card.Installments)
}

func TestHandler_Confirm_BadRowRejectsBatch(t *testing.T) {
	router, txSvc := newRouter()

	body := `{"rows":[
		{"amount":"10","type":"expense","date":"2024-06-01","owner":"leo","scope":"SHARED"},
		{"amount":"10","type":"expense","date":"junho","owner":"leo","scope":"SHARED"}
	]}`

	req := httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "row 2")

	txs, err := txSvc.All(t.Context())
	require.NoError(t, err)
	assert.Empty(t, txs)
}
