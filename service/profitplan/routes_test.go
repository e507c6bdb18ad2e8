package profitplan

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/KAsare1/Kodefx-channels/db/dbtest"
	"github.com/KAsare1/Kodefx-channels/storage"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var documentIDPattern = regexp.MustCompile(`^PP-[0-9A-Z]+-[0-9A-Z]{6}$`)

func passThrough(next http.HandlerFunc) http.HandlerFunc { return next }

func newTestHandler(t *testing.T) (*Handler, *gorm.DB, *mux.Router) {
	t.Helper()
	conn := dbtest.Open(t)
	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	h := NewHandler(conn, store)
	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api").Subrouter(), passThrough)
	return h, conn, router
}

func uploadRequest(t *testing.T, planAmount, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if planAmount != "" {
		require.NoError(t, mw.WriteField("plan_amount", planAmount))
	}
	require.NoError(t, mw.WriteField("description", "Starter tier"))
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 plan"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profit-plans/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	_, conn, router := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "1000", "plan.pdf"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got models.ProfitPlanFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, "1000", got.PlanAmount)
	assert.Equal(t, "plan.pdf", got.FileName)
	assert.Equal(t, "Starter tier", got.Description)
	assert.True(t, strings.HasPrefix(got.FileURL, "http://localhost:8080/uploads/profit-plans/"))

	var count int64
	conn.Model(&models.ProfitPlanFile{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUploadFileRequiresFileAndPlanAmount(t *testing.T) {
	_, conn, router := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "", "plan.pdf"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"plan_amount is required"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "1000", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"file is required"}`, rec.Body.String())

	var count int64
	conn.Model(&models.ProfitPlanFile{}).Count(&count)
	assert.Zero(t, count)
}

func TestDownloadFileRedirectsToFirstMatch(t *testing.T) {
	_, conn, router := newTestHandler(t)
	require.NoError(t, conn.Create(&models.ProfitPlanFile{PlanAmount: "5000", FileURL: "https://cdn.example.com/first.pdf", FileName: "first.pdf"}).Error)
	require.NoError(t, conn.Create(&models.ProfitPlanFile{PlanAmount: "5000", FileURL: "https://cdn.example.com/second.pdf", FileName: "second.pdf"}).Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profit-plans/download-file?plan_amount=5000", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://cdn.example.com/first.pdf", rec.Header().Get("Location"))
}

func TestDownloadFileUnknownPlanAmount(t *testing.T) {
	_, _, router := newTestHandler(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profit-plans/download-file?plan_amount=42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no file found for this plan amount"}`, rec.Body.String())
}

func TestDownloadFileGeneratesFreshDocuments(t *testing.T) {
	_, conn, router := newTestHandler(t)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profit-plans/download-file", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

		id := rec.Header().Get(DocumentIDHeader)
		assert.Regexp(t, documentIDPattern, id)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "profit-plan-"+id+".pdf")
		ids = append(ids, id)
	}
	assert.NotEqual(t, ids[0], ids[1])

	var count int64
	conn.Model(&models.ProfitPlanFile{}).Count(&count)
	assert.Zero(t, count)
}

func TestNewDocumentID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	id, err := NewDocumentID(now, bytes.NewReader(make([]byte, 16)))
	require.NoError(t, err)

	want := "PP-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)) + "-000000"
	assert.Equal(t, want, id)
	assert.Regexp(t, documentIDPattern, id)
}

func TestDocumentContents(t *testing.T) {
	doc := Document{ID: "PP-TEST-ABC123", GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	var buf bytes.Buffer
	require.NoError(t, doc.build(false).Output(&buf))
	body := buf.String()

	assert.Contains(t, body, "Kodefx Profit Plan")
	assert.Contains(t, body, "Max risk per trade")
	assert.Contains(t, body, "Risk disclaimer")
	assert.Contains(t, body, "Document ID: PP-TEST-ABC123")
	assert.Contains(t, body, "2024-05-01 12:00:00 UTC")
}

func TestDeleteFile(t *testing.T) {
	_, conn, router := newTestHandler(t)
	file := models.ProfitPlanFile{PlanAmount: "1000", FileURL: "https://cdn.example.com/p.pdf", FileName: "p.pdf"}
	require.NoError(t, conn.Create(&file).Error)

	path := "/api/profit-plans/" + strconv.FormatUint(uint64(file.ID), 10)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFiles(t *testing.T) {
	_, conn, router := newTestHandler(t)
	require.NoError(t, conn.Create(&models.ProfitPlanFile{PlanAmount: "1000", FileURL: "u1", FileName: "a.pdf"}).Error)
	require.NoError(t, conn.Create(&models.ProfitPlanFile{PlanAmount: "2000", FileURL: "u2", FileName: "b.pdf"}).Error)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profit-plans", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var files []models.ProfitPlanFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 2)
	assert.Equal(t, "2000", files[0].PlanAmount)
}
