package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/edirooss/booru-index/internal/booru"
)

func testPosts() []booru.Post {
	return []booru.Post{
		{PostID: 1, Score: 100, Rating: booru.RatingGeneral, FileExt: booru.ExtPNG, Tags: []string{"hatsune_miku"}},
		{PostID: 2, Score: 50, Rating: booru.RatingExplicit, FileExt: booru.ExtJPG, Tags: []string{"kagamine_rin"}},
		{PostID: 3, Score: 200, Rating: booru.RatingGeneral, FileExt: booru.ExtPNG, Tags: []string{"hatsune_miku", "vocaloid"}},
	}
}

func newTestService() *Service {
	return NewService(booru.BuildDatabase(testPosts()))
}

func TestPingRoute(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPostsDefaultSort(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts?query=rating:general", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp postsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Matched)
}

func TestGetPostsInvalidQueryParam(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=notanumber", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-Request-ID", "fixed-id-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id-123", w.Header().Get("X-Request-ID"))
}

func TestGetPostsCoalescesIdenticalQueries(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())

	var bodies [2]string
	for i := range bodies {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/posts?query=rating:general", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		bodies[i] = w.Body.String()
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestGetTagsSortedByCount(t *testing.T) {
	r := NewRouter(newTestService(), zap.NewNop())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tags?sort=-count", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tagsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, len(resp.Tags), 1)
	assert.Equal(t, "hatsune_miku", resp.Tags[0].Name)
}
