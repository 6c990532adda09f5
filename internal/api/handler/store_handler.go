package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmolenaar/pharmvault/internal/api/dto"
	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/store"
)

// StoreHandler is the collaborator surface over the in-memory pharmacy
// collections. The wider ERP front-end talks to these endpoints; the
// backup subsystem only cares that they mutate the store it snapshots.
type StoreHandler struct {
	store *store.Store
}

func NewStoreHandler(st *store.Store) *StoreHandler {
	return &StoreHandler{store: st}
}

func (h *StoreHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "failed to hash password",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}

	user := h.store.CreateUser(domain.NewUser(req.Username, string(hash), role))
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *StoreHandler) ListUsers(c *gin.Context) {
	users := h.store.ListUsers()
	response := make([]dto.UserResponse, len(users))
	for i, u := range users {
		response[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, response)
}

func (h *StoreHandler) UpdateUserPassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "failed to hash password",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if !h.store.UpdateUserPassword(id, string(hash)) {
		notFound(c, "user")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

func (h *StoreHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.store.DeleteUser(id) {
		notFound(c, "user")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category := h.store.CreateCategory(domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func (h *StoreHandler) ListCategories(c *gin.Context) {
	categories := h.store.ListCategories()
	response := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		response[i] = toCategoryResponse(cat)
	}
	c.JSON(http.StatusOK, response)
}

func (h *StoreHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.store.DeleteCategory(id) {
		notFound(c, "category")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StoreHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense := h.store.CreateExpense(domain.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Date:        req.Date,
	})
	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

func (h *StoreHandler) ListExpenses(c *gin.Context) {
	expenses := h.store.ListExpenses()
	response := make([]dto.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		response[i] = toExpenseResponse(e)
	}
	c.JSON(http.StatusOK, response)
}

func (h *StoreHandler) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !h.store.DeleteExpense(id) {
		notFound(c, "expense")
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "invalid id",
			Code:    http.StatusBadRequest,
		})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{
		Error:   "Not Found",
		Message: what + " not found",
		Code:    http.StatusNotFound,
	})
}

func toUserResponse(u domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toCategoryResponse(c domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func toExpenseResponse(e domain.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Date:        e.Date,
	}
}
