package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"homeroom/middleware"
	"homeroom/models"
	"homeroom/utils"
)

type CreateTaskRequest struct {
	Title      string     `json:"title" binding:"required"`
	Notes      string     `json:"notes"`
	AssigneeID string     `json:"assignee_id"`
	DueAt      *time.Time `json:"due_at"`
}

type UpdateTaskRequest struct {
	Title string     `json:"title"`
	Notes string     `json:"notes"`
	DueAt *time.Time `json:"due_at"`
}

type GradeTaskRequest struct {
	Grade string `json:"grade" binding:"required"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	t, err := h.tasks.Create(middleware.GetUserID(c), req.AssigneeID, req.Title, req.Notes, req.DueAt)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, t)
}

func (h *Handler) GetTasks(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var (
		tasks []models.Task
		err   error
	)
	if c.Query("role") == "owner" {
		tasks, err = h.tasks.ListOwned(userID)
	} else {
		tasks, err = h.tasks.ListAssigned(userID)
	}
	if err != nil {
		utils.Error(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	utils.Success(c, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	t, err := h.tasks.Get(c.Param("id"))
	if err != nil {
		utils.Error(c, err)
		return
	}
	userID := middleware.GetUserID(c)
	if t.OwnerID != userID && t.AssigneeID != userID {
		utils.NotFound(c, "task not found")
		return
	}
	utils.Success(c, t)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	t, err := h.tasks.Update(c.Param("id"), middleware.GetUserID(c), req.Title, req.Notes, req.DueAt)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, t)
}

func (h *Handler) SubmitTask(c *gin.Context) {
	t, err := h.tasks.Submit(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, t)
}

func (h *Handler) GradeTask(c *gin.Context) {
	var req GradeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	t, err := h.tasks.Grade(c.Param("id"), middleware.GetUserID(c), req.Grade)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, t)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.tasks.Delete(c.Param("id"), middleware.GetUserID(c)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}
