package handler

import (
	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TableHandler handles restaurant table HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// ListTables handles listing tables, optionally filtered by status
func (h *TableHandler) ListTables(c *gin.Context) {
	var status *enum.TableStatus
	if raw := c.Query("status"); raw != "" {
		s := enum.TableStatus(raw)
		if !s.IsValid() {
			response.BadRequest(c, "Invalid table status")
			return
		}
		status = &s
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tables retrieved successfully", tables)
}

// GetTable handles fetching a single table
func (h *TableHandler) GetTable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table retrieved successfully", table)
}

// GetTableOrders handles listing a table's open orders
func (h *TableHandler) GetTableOrders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	orders, err := h.tableService.GetTableOrders(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table orders retrieved successfully", orders)
}

// CreateTable handles creating a table
func (h *TableHandler) CreateTable(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), *userID, &service.CreateTableInput{
		Number:   req.Number,
		Capacity: req.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Table created successfully", table)
}

// UpdateTable handles updating a table's capacity or status
func (h *TableHandler) UpdateTable(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req request.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateTableInput{Capacity: req.Capacity}
	if req.Status != nil {
		status := enum.TableStatus(*req.Status)
		input.Status = &status
	}

	table, err := h.tableService.UpdateTable(c.Request.Context(), *userID, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table updated successfully", table)
}

// DeleteTable handles deleting a table with no unpaid orders
func (h *TableHandler) DeleteTable(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.DeleteTable(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table deleted successfully", nil)
}
