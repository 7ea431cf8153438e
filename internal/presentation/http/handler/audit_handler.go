package handler

import (
	"time"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler handles operation log HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing operation log entries
func (h *AuditHandler) List(c *gin.Context) {
	params := &repository.OperationLogFilterParams{
		Pagination: GetPagination(c),
		EntityType: c.Query("entity_type"),
	}

	if user := c.Query("user_id"); user != "" {
		id, err := uuid.Parse(user)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		params.UserID = &id
	}
	if action := c.Query("action"); action != "" {
		a := enum.AuditAction(action)
		if a != enum.AuditActionCreate && a != enum.AuditActionUpdate && a != enum.AuditActionDelete {
			response.BadRequest(c, "Invalid audit action")
			return
		}
		params.Action = &a
	}
	if start := c.Query("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if end := c.Query("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		t = t.Add(24 * time.Hour)
		params.EndDate = &t
	}

	logs, total, err := h.auditService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(logs, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Operation log retrieved successfully", result)
}

// History handles listing every recorded mutation for one object
func (h *AuditHandler) History(c *gin.Context) {
	entityType := c.Param("entityType")
	objectID := c.Param("objectID")
	if entityType == "" || objectID == "" {
		response.BadRequest(c, "Entity type and object ID are required")
		return
	}

	logs, err := h.auditService.History(c.Request.Context(), entityType, objectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Object history retrieved successfully", logs)
}
