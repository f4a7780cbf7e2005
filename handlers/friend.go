package handlers

import (
	"github.com/gin-gonic/gin"

	"homeroom/core"
	"homeroom/middleware"
	"homeroom/models"
	"homeroom/utils"
)

type FriendRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

type RespondRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accept decline"`
}

// GetFriends materializes the accepted pairs into user summaries.
func (h *Handler) GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ids, err := h.friends.ListFriends(userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	friends := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		summary, err := h.identity.Summary(id)
		if err != nil {
			continue
		}
		friends = append(friends, *summary)
	}

	utils.Success(c, friends)
}

func (h *Handler) GetFriendRequests(c *gin.Context) {
	h.listRequests(c, h.friends.ListIncoming)
}

func (h *Handler) GetOutgoingRequests(c *gin.Context) {
	h.listRequests(c, h.friends.ListOutgoing)
}

func (h *Handler) listRequests(c *gin.Context, list func(string) ([]models.Friendship, error)) {
	userID := middleware.GetUserID(c)

	requests, err := list(userID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	out := make([]models.FriendshipWithUser, 0, len(requests))
	for _, f := range requests {
		row := models.FriendshipWithUser{Friendship: f}
		if user, err := h.identity.Get(f.OtherParty(userID)); err == nil {
			row.User = *user.ToResponse()
		}
		out = append(out, row)
	}

	utils.Success(c, out)
}

func (h *Handler) SendFriendRequest(c *gin.Context) {
	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	f, err := h.friends.SendRequest(middleware.GetUserID(c), req.UserID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, f)
}

func (h *Handler) RespondToRequest(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	f, err := h.friends.Respond(c.Param("id"), middleware.GetUserID(c), core.Decision(req.Decision))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, f)
}

// DeleteFriendship removes the pair record: unfriend, withdraw, or lift a
// block.
func (h *Handler) DeleteFriendship(c *gin.Context) {
	if err := h.friends.Remove(c.Param("id"), middleware.GetUserID(c)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

func (h *Handler) BlockUser(c *gin.Context) {
	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	f, err := h.friends.Block(middleware.GetUserID(c), req.UserID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, f)
}
