// Interaction HTTP handlers.
//
// This file exposes the read endpoint for interaction records:
//   - GET /interactions (list, filtered, paginated, ETag support)
//
// Records are served through the analytics engine's fetch path, so the list
// carries the same normalized day arithmetic and priority fields the
// dashboard widgets use, and the same degradation policy applies.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
	"github.com/crmkit/go-crm-backend/internal/repo"
	"github.com/crmkit/go-crm-backend/internal/services/analytics"
	"github.com/crmkit/go-crm-backend/internal/utils"
)

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListInteractionsResponse wraps a page of normalized interactions,
// pagination information, and the degradation tag.
type ListInteractionsResponse struct {
	Interactions []domain.NormalizedInteraction `json:"interactions"`
	Pagination   Pagination                     `json:"pagination"`
	Degradation  domain.Degradation             `json:"degradation"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// pageSlice returns the page-th slice of size pageSize from recs.
func pageSlice(recs []domain.NormalizedInteraction, page, pageSize int) []domain.NormalizedInteraction {
	start := (page - 1) * pageSize
	if start >= len(recs) {
		return []domain.NormalizedInteraction{}
	}
	end := start + pageSize
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end]
}

//
// Handlers
//

// ListInteractions godoc
// @ID          listInteractions
// @Summary     List interactions (paginated)
// @Description Returns a page of normalized interactions, date descending. Supports weak ETag via If-None-Match for unfiltered requests and may return 304.
// @Tags        Interactions
// @Produce     json
//
// @Param       If-None-Match     header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page              query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size         query   int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Param       search            query   string  false "Free-text search over subject and notes"
// @Param       types             query   string  false "Comma-separated interaction types"  example(EMAIL,CALL)
// @Param       opportunity_id    query   string  false "Scope to one opportunity"
// @Param       contact_id        query   string  false "Scope to one contact"
// @Param       organization      query   string  false "Scope to one organization"
// @Param       principal         query   string  false "Scope to one principal"
// @Param       date_from         query   string  false "Earliest interaction date (inclusive)"  example(2026-01-01)
// @Param       date_to           query   string  false "Latest interaction date (inclusive)"    example(2026-06-30)
// @Param       follow_up_needed  query   bool    false "Filter on the follow-up flag"
//
// @Success     200  {object} handlers.ListInteractionsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Router      /interactions [get]
func (h *Handlers) ListInteractions(c *gin.Context) {
	ctx := c.Request.Context()
	f, valid := filterFromQuery(c)
	if !valid {
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check for unfiltered requests (best effort). Filtered results
	// depend on the filter, not just table state, so they are never tagged.
	var db *gorm.DB
	if svc, isEngine := h.analyticsSvc.(*analytics.Service); isEngine && svc.Fetcher != nil {
		db = svc.Fetcher.DB
	}
	if db != nil && f.Empty() {
		count, maxTS, err := repo.InteractionStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"interactions:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	recs, deg := h.analyticsSvc.Interactions(ctx, f)

	total := int64(len(recs))
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListInteractionsResponse{
		Interactions: pageSlice(recs, page, pageSize),
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
		Degradation: deg,
	}
	ok(c, http.StatusOK, resp)
}
