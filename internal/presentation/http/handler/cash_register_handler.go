package handler

import (
	"time"

	"github.com/dcruzdev/restopos/internal/application/service"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/request"
	"github.com/dcruzdev/restopos/internal/presentation/http/dto/response"
	"github.com/dcruzdev/restopos/pkg/pagination"
	"github.com/dcruzdev/restopos/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CashRegisterHandler handles till session HTTP requests
type CashRegisterHandler struct {
	registerService *service.CashRegisterService
}

// NewCashRegisterHandler creates a new cash register handler
func NewCashRegisterHandler(registerService *service.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{registerService: registerService}
}

// Open handles starting a till session
func (h *CashRegisterHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.Open(c.Request.Context(), *userID, utils.ToCents(req.InitialAmount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Register session opened successfully", register)
}

// Close handles ending the operator's till session
func (h *CashRegisterHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.registerService.Close(c.Request.Context(), *userID,
		utils.ToCents(req.DeclaredCash), utils.ToCents(req.DeclaredCard))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Register session closed successfully", result)
}

// Current handles fetching the operator's open session
func (h *CashRegisterHandler) Current(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	register, err := h.registerService.Current(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Register session retrieved successfully", register)
}

// InsertMoney handles adding cash to the till outside of a sale
func (h *CashRegisterHandler) InsertMoney(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.InsertMoney(c.Request.Context(), *userID,
		utils.ToCents(req.Amount), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cash inserted successfully", register)
}

// ExtractMoney handles removing cash from the till outside of a sale
func (h *CashRegisterHandler) ExtractMoney(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CashMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.ExtractMoney(c.Request.Context(), *userID,
		utils.ToCents(req.Amount), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cash extracted successfully", register)
}

// GetSession handles fetching a single register session
func (h *CashRegisterHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register session ID")
		return
	}

	register, err := h.registerService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Register session retrieved successfully", register)
}

// ListSessions handles listing register sessions with filters
func (h *CashRegisterHandler) ListSessions(c *gin.Context) {
	params := &repository.CashRegisterFilterParams{
		Pagination: GetPagination(c),
	}
	if raw := c.Query("operator_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid operator ID")
			return
		}
		params.OperatorID = &id
	}
	if raw := c.Query("is_open"); raw != "" {
		v := raw == "true"
		params.IsOpen = &v
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	sessions, total, err := h.registerService.ListSessions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sessions,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Register sessions retrieved successfully", result)
}
