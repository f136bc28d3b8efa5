package httpapi

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/booru-index/internal/booru"
	"github.com/edirooss/booru-index/internal/db"
	"github.com/edirooss/booru-index/internal/result"
)

// PostsSort selects the field and direction posts are paginated by.
type PostsSort string

const (
	SortIDAsc     PostsSort = "id"
	SortIDDesc    PostsSort = "-id"
	SortScoreAsc  PostsSort = "score"
	SortScoreDesc PostsSort = "-score"
)

func parsePostsSort(s string) PostsSort {
	switch PostsSort(s) {
	case SortIDAsc, SortScoreAsc, SortScoreDesc:
		return PostsSort(s)
	default:
		return SortIDDesc
	}
}

type getPostsQuery struct {
	Query string `form:"query" binding:"omitempty"`
	Sort  string `form:"sort"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type postsResponseTimings struct {
	QueryNanos int64 `json:"query_ns"`
	SortNanos  int64 `json:"sort_ns"`
}

type postsResponse struct {
	Matched int                  `json:"matched"`
	URL     string               `json:"url"`
	Timings postsResponseTimings `json:"timings"`
}

// sourceBaseURL returns the upstream gallery's post-listing base URL,
// configured by environment since it names an external system this
// service links back to rather than serves itself.
func sourceBaseURL() string {
	if v := os.Getenv("BOORU_SOURCE_BASE_URL"); v != "" {
		return v
	}
	return "https://example-booru.invalid/posts"
}

// GetPosts handles GET /posts?query=...&sort=...&page=...&limit=...
func (s *Service) GetPosts(c *gin.Context) {
	var q getPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}

	sortKey := parsePostsSort(q.Sort)

	sfKey := fmt.Sprintf("%s\x00%s\x00%d\x00%d", q.Query, sortKey, q.Page, q.Limit)
	v, err, _ := s.sg.Do(sfKey, func() (any, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		queryStart := time.Now()
		matched, err := s.store.Query(q.Query)
		if err != nil {
			return nil, err
		}
		queryElapsed := time.Since(queryStart)

		sortStart := time.Now()
		var sortOrder []uint32
		reverse := false
		switch sortKey {
		case SortIDAsc, SortIDDesc:
			sortOrder = db.Typed[*booru.RangeField[int64]](s.store, "id").Ids()
			reverse = sortKey == SortIDDesc
		case SortScoreAsc, SortScoreDesc:
			sortOrder = db.Typed[*booru.RangeField[int64]](s.store, "score").Ids()
			reverse = sortKey == SortScoreDesc
		}
		ids := result.Page(matched, sortOrder, reverse, q.Page*q.Limit, q.Limit)
		sortElapsed := time.Since(sortStart)

		postIDs := make([]string, 0, len(ids))
		for _, id := range ids {
			post, ok := s.store.Get(id)
			if !ok {
				continue
			}
			postIDs = append(postIDs, strconv.FormatInt(post.PostID, 10))
		}

		return postsResponse{
			Matched: result.Count(matched),
			URL:     fmt.Sprintf("%s?tags=id:%s+order:custom", sourceBaseURL(), strings.Join(postIDs, ",")),
			Timings: postsResponseTimings{
				QueryNanos: queryElapsed.Nanoseconds(),
				SortNanos:  sortElapsed.Nanoseconds(),
			},
		}, nil
	})
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, v.(postsResponse))
}
