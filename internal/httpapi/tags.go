package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edirooss/booru-index/internal/booru"
	"github.com/edirooss/booru-index/internal/db"
	"github.com/edirooss/booru-index/internal/result"
)

// TagsSort selects the direction tags are paginated by usage count.
type TagsSort string

const (
	TagsSortCountAsc  TagsSort = "count"
	TagsSortCountDesc TagsSort = "-count"
)

func parseTagsSort(s string) TagsSort {
	if TagsSort(s) == TagsSortCountAsc {
		return TagsSortCountAsc
	}
	return TagsSortCountDesc
}

type getTagsQuery struct {
	Query string `form:"query" binding:"omitempty"`
	Sort  string `form:"sort"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type tagEntry struct {
	Name  string `json:"name"`
	Count uint32 `json:"count"`
}

type tagsResponseTimings struct {
	QueryNanos int64 `json:"query_ns"`
	SortNanos  int64 `json:"sort_ns"`
}

type tagsResponse struct {
	Tags    []tagEntry          `json:"tags"`
	Matched int                 `json:"matched"`
	Timings tagsResponseTimings `json:"timings"`
}

// GetTags handles GET /tags?query=...&sort=...&page=...&limit=...,
// querying the tag field's nested tag database directly.
func (s *Service) GetTags(c *gin.Context) {
	var q getTagsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	sortKey := parseTagsSort(q.Sort)

	s.mu.RLock()
	defer s.mu.RUnlock()

	tagField := db.TypedDefault[*booru.TagField](s.store)
	tagDB := tagField.TagDB()
	idIdx := tagField.TagIDIndex()

	queryStart := time.Now()
	matched, err := tagDB.Query(q.Query)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	queryElapsed := time.Since(queryStart)

	sortStart := time.Now()
	sortOrder := db.Typed[*booru.TagCountIndex](tagDB, "count").Ids()
	ids := result.Page(matched, sortOrder, sortKey == TagsSortCountDesc, q.Page*q.Limit, q.Limit)
	sortElapsed := time.Since(sortStart)

	tags := make([]tagEntry, 0, len(ids))
	for _, id := range ids {
		name, ok := idIdx.KeyFor(id)
		if !ok {
			continue
		}
		tag, ok := tagDB.Get(id)
		if !ok {
			continue
		}
		tags = append(tags, tagEntry{Name: name, Count: tag.Count})
	}

	c.JSON(http.StatusOK, tagsResponse{
		Tags:    tags,
		Matched: result.Count(matched),
		Timings: tagsResponseTimings{
			QueryNanos: queryElapsed.Nanoseconds(),
			SortNanos:  sortElapsed.Nanoseconds(),
		},
	})
}
