package dto

import "time"

// CreateUserRequest creates a user in the store.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// UpdateUserPasswordRequest replaces a user's password.
type UpdateUserPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse represents a user without its password hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCategoryRequest creates an expense category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse represents a category.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateExpenseRequest creates an expense.
type CreateExpenseRequest struct {
	Description string    `json:"description" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	CategoryID  int64     `json:"categoryId" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
}

// ExpenseResponse represents an expense.
type ExpenseResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CategoryID  int64     `json:"categoryId"`
	Date        time.Time `json:"date"`
}
