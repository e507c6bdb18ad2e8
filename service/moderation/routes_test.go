package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/KAsare1/Kodefx-channels/db/dbtest"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func passThrough(next http.HandlerFunc) http.HandlerFunc { return next }

func setup(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	conn := dbtest.Open(t)
	router := mux.NewRouter()
	NewHandler(conn).RegisterRoutes(router.PathPrefix("/api").Subrouter(), passThrough)
	return conn, router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func countReviews(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(&models.Review{}).Count(&n).Error)
	return n
}

func TestCreateReviewRatingBoundaries(t *testing.T) {
	tests := []struct {
		rating string
		status int
	}{
		{"1", http.StatusCreated},
		{"5", http.StatusCreated},
		{"3", http.StatusCreated},
		{"0", http.StatusBadRequest},
		{"6", http.StatusBadRequest},
		{"-1", http.StatusBadRequest},
		{"4.5", http.StatusBadRequest},
		{`"5"`, http.StatusBadRequest},
		{"null", http.StatusBadRequest},
		{"true", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.rating, func(t *testing.T) {
			conn, router := setup(t)

			rec := do(router, http.MethodPost, "/api/reviews", `{"name":"Ama","rating":`+tt.rating+`,"comment":"Great signals"}`)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.status == http.StatusCreated {
				var got models.Review
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.False(t, got.Approved)
				assert.EqualValues(t, 1, countReviews(t, conn))
			} else {
				assert.Zero(t, countReviews(t, conn))
			}
		})
	}
}

func TestCreateReviewMissingRating(t *testing.T) {
	conn, router := setup(t)

	rec := do(router, http.MethodPost, "/api/reviews", `{"name":"Ama","comment":"Great"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"rating is required"}`, rec.Body.String())
	assert.Zero(t, countReviews(t, conn))
}

func TestCreateReviewMissingFields(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPost, "/api/reviews", `{"rating":4,"comment":"Great"}`)
	assert.JSONEq(t, `{"error":"name is required"}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/reviews", `{"name":"Ama","rating":4}`)
	assert.JSONEq(t, `{"error":"comment is required"}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/reviews", `{"name":"Ama","rating":4,"comment":"ok","channelType":"crypto"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReviewChannelType(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPost, "/api/reviews", `{"name":"Ama","rating":4,"comment":"ok","channelType":"Gold"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.ChannelType)
	assert.Equal(t, "gold", *got.ChannelType)
}

func TestReviewModerationFlow(t *testing.T) {
	conn, router := setup(t)

	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/reviews", `{"name":"A","rating":5,"comment":"first"}`).Code)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/reviews", `{"name":"B","rating":4,"comment":"second"}`).Code)

	var pending []models.Review
	rec := do(router, http.MethodGet, "/api/reviews/pending", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 2)
	assert.Equal(t, "B", pending[0].Name)

	var approved []models.Review
	rec = do(router, http.MethodGet, "/api/reviews", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Empty(t, approved)

	path := "/api/reviews/" + jsonID(pending[1].ID) + "/approve"
	for i := 0; i < 2; i++ {
		rec = do(router, http.MethodPut, path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got models.Review
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Approved)
		assert.Equal(t, "A", got.Name)
	}

	rec = do(router, http.MethodGet, "/api/reviews", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	require.Len(t, approved, 1)
	assert.Equal(t, "A", approved[0].Name)
	assert.EqualValues(t, 2, countReviews(t, conn))
}

func TestApproveMissingReview(t *testing.T) {
	conn, router := setup(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/reviews", `{"name":"A","rating":5,"comment":"x"}`).Code)

	rec := do(router, http.MethodPut, "/api/reviews/999/approve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var stored []models.Review
	require.NoError(t, conn.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Approved)
}

func TestDeleteReview(t *testing.T) {
	conn, router := setup(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/reviews", `{"name":"A","rating":5,"comment":"x"}`).Code)

	rec := do(router, http.MethodDelete, "/api/reviews/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Zero(t, countReviews(t, conn))

	rec = do(router, http.MethodDelete, "/api/reviews/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpinionModerationFlow(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPost, "/api/opinions", `{"name":"Esi","email":"esi@example.com","opinion":"Love it"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Opinion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.Approved)

	rec = do(router, http.MethodPut, "/api/opinions/"+jsonID(created.ID)+"/approve", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var approved []models.Opinion
	rec = do(router, http.MethodGet, "/api/opinions/approved", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	require.Len(t, approved, 1)

	var pending []models.Opinion
	rec = do(router, http.MethodGet, "/api/opinions/pending", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	assert.Empty(t, pending)

	assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/api/opinions/"+jsonID(created.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/opinions/"+jsonID(created.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPut, "/api/opinions/42/approve", "").Code)
}

func TestCreateOpinionValidation(t *testing.T) {
	_, router := setup(t)

	rec := do(router, http.MethodPost, "/api/opinions", `{"name":"Esi","email":"nope","opinion":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"email is invalid"}`, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/opinions", `{"name":"Esi","email":"esi@example.com"}`)
	assert.JSONEq(t, `{"error":"opinion is required"}`, rec.Body.String())
}

func TestGetItemRoutes(t *testing.T) {
	_, router := setup(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/reviews", `{"name":"A","rating":4,"comment":"solid"}`).Code)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/opinions", `{"name":"Esi","email":"esi@example.com","opinion":"Love it"}`).Code)

	rec := do(router, http.MethodGet, "/api/reviews/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var review models.Review
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &review))
	assert.Equal(t, 4, review.Rating)
	assert.False(t, review.Approved)

	rec = do(router, http.MethodGet, "/api/opinions/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var opinion models.Opinion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opinion))
	assert.Equal(t, "Love it", opinion.Opinion)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/reviews/99", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/opinions/99", "").Code)
}

func TestQueueGet(t *testing.T) {
	conn := dbtest.Open(t)
	q := NewQueue[models.Opinion](conn)
	ctx := context.Background()

	op := models.Opinion{Name: "n", Email: "e@example.com", Opinion: "o"}
	require.NoError(t, q.Create(ctx, &op))

	got, err := q.Get(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, "o", got.Opinion)

	_, err = q.Get(ctx, op.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
