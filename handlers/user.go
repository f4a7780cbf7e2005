package handlers

import (
	"github.com/gin-gonic/gin"

	"homeroom/middleware"
	"homeroom/models"
	"homeroom/utils"
)

type UpdateUserRequest struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.identity.Get(middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, user.ToResponse())
}

func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user, err := h.identity.UpdateProfile(middleware.GetUserID(c), req.DisplayName, req.Avatar)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, user.ToResponse())
}

func (h *Handler) GetUserSummary(c *gin.Context) {
	summary, err := h.identity.Summary(c.Param("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, summary)
}

func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.identity.List(middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, toResponses(users))
}

func (h *Handler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "search query is required")
		return
	}

	users, err := h.identity.Search(query, 20)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, toResponses(users))
}

func toResponses(users []models.User) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToResponse())
	}
	return out
}
