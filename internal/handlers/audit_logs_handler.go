package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/infra/repository"
	"github.com/BruksfildServices01/booking-slots/internal/models"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

// ======================================================
// HANDLER
// ======================================================

// OwnershipChecker reports whether a user manages a resource.
type OwnershipChecker interface {
	IsResourceOwner(ctx context.Context, resourceID, userID string) (bool, error)
}

type AuditLogReader interface {
	ListAuditLogs(ctx context.Context, f repository.AuditLogFilter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs   AuditLogReader
	owners OwnershipChecker
}

func NewAuditLogsHandler(logs AuditLogReader, owners OwnershipChecker) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, owners: owners}
}

// List serves GET /api/me/resources/:id/audit-logs[?action=&entity=&from=&to=&page=&limit=].
func (h *AuditLogsHandler) List(c *gin.Context) {
	resourceID := c.Param("id")

	ok, err := h.owners.IsResourceOwner(c.Request.Context(), resourceID, callerID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !ok {
		httperr.Forbidden(c, "forbidden", "Not allowed for this resource.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := repository.AuditLogFilter{
		ResourceID: resourceID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	for name, dst := range map[string]*wallclock.Date{"from": &f.From, "to": &f.To} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		d, err := wallclock.ParseDate(raw)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation(name, "must be YYYY-MM-DD"))
			return
		}
		*dst = d
	}

	logs, total, err := h.logs.ListAuditLogs(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
