package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/greenhabit/greenhabit/models"
	"github.com/greenhabit/greenhabit/utils"
)

// TodoController handles the per-user todo list.
type TodoController struct {
	db *gorm.DB
}

// NewTodoController creates a new controller instance.
func NewTodoController(db *gorm.DB) *TodoController {
	return &TodoController{db: db}
}

// List returns the user's todos, newest first.
func (t *TodoController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	todos := []models.Todo{}
	if err := t.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&todos).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load todos")
		return
	}
	utils.Success(ctx, todos)
}

// Create adds a todo. Text is sanitized before storage.
func (t *TodoController) Create(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Text     string  `json:"text" binding:"required"`
		DueDate  *string `json:"due_date"`
		Priority int     `json:"priority"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	text := utils.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		utils.Error(ctx, http.StatusBadRequest, 40061, "text must not be empty")
		return
	}
	dueDate, err := normalizeDueDate(req.DueDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, "due_date must be formatted YYYY-MM-DD")
		return
	}

	todo := models.Todo{
		UserID:   userID,
		Text:     text,
		DueDate:  dueDate,
		Priority: req.Priority,
	}
	if err := t.db.Create(&todo).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to create todo")
		return
	}

	ctx.JSON(http.StatusCreated, utils.JSONResponse{Code: 0, Message: "success", Data: todo})
}

// Update patches a todo; only provided fields change. Rows belonging to
// other users are indistinguishable from missing ones.
func (t *TodoController) Update(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Text     *string `json:"text"`
		Done     *bool   `json:"done"`
		DueDate  *string `json:"due_date"`
		Priority *int    `json:"priority"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	var todo models.Todo
	err := t.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40460, "todo not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load todo")
		return
	}

	if req.Text != nil {
		text := utils.Sanitize(strings.TrimSpace(*req.Text))
		if text == "" {
			utils.Error(ctx, http.StatusBadRequest, 40061, "text must not be empty")
			return
		}
		todo.Text = text
	}
	if req.Done != nil {
		todo.Done = *req.Done
	}
	if req.DueDate != nil {
		dueDate, err := normalizeDueDate(req.DueDate)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40062, "due_date must be formatted YYYY-MM-DD")
			return
		}
		todo.DueDate = dueDate
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	todo.UpdatedAt = time.Now()

	if err := t.db.Save(&todo).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to update todo")
		return
	}
	utils.Success(ctx, todo)
}

// Delete removes a todo owned by the caller.
func (t *TodoController) Delete(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res := t.db.Where("id = ? AND user_id = ?", ctx.Param("id"), userID).Delete(&models.Todo{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50064, "failed to delete todo")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40460, "todo not found")
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}

// normalizeDueDate validates an optional calendar date; empty clears it.
func normalizeDueDate(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.Parse(models.DateLayout, trimmed)
	if err != nil {
		return nil, err
	}
	normalized := parsed.Format(models.DateLayout)
	return &normalized, nil
}
