package handlers

import (
	"github.com/gin-gonic/gin"

	"homeroom/middleware"
	"homeroom/models"
	"homeroom/utils"
)

// GetConversations returns the derived overview: one row per direct
// partner or member group, newest first, with the unread flag.
func (h *Handler) GetConversations(c *gin.Context) {
	rows, err := h.index.LatestPerConversation(middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	if rows == nil {
		rows = []models.ConversationRow{}
	}
	utils.Success(c, rows)
}

func (h *Handler) GetUnreadCounts(c *gin.Context) {
	counts, err := h.index.UnreadCounts(middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, counts)
}
