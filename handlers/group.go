package handlers

import (
	"github.com/gin-gonic/gin"

	"homeroom/core"
	"homeroom/middleware"
	"homeroom/models"
	"homeroom/utils"
)

type CreateGroupRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type UpdateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMembersRequest struct {
	UserIDs []string `json:"user_ids" binding:"required"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,oneof=admin moderator member"`
}

type JoinGroupRequest struct {
	Code string `json:"code" binding:"required"`
}

type TransferOwnershipRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *Handler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	g, err := h.groups.Create(req.Name, req.Description, middleware.GetUserID(c), req.MemberIDs)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, g.ToResponse())
}

func (h *Handler) GetGroups(c *gin.Context) {
	groups, err := h.groups.ListForUser(middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, groups)
}

func (h *Handler) GetGroup(c *gin.Context) {
	g, _, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, g.ToResponse())
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	g, member, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if member.Role != models.RoleAdmin {
		utils.Forbidden(c, "only admins can update the group")
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updated, err := h.groups.UpdateInfo(g.ID, req.Name, req.Description)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, updated.ToResponse())
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	g, _, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if g.OwnerID != middleware.GetUserID(c) {
		utils.Forbidden(c, "only the owner can delete the group")
		return
	}

	if err := h.groups.Delete(g.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

func (h *Handler) AddGroupMembers(c *gin.Context) {
	g, member, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if member.Role == models.RoleMember {
		utils.Forbidden(c, "only admins or moderators can add members")
		return
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	for _, uid := range req.UserIDs {
		h.groups.AddMember(g.ID, uid, models.RoleMember)
	}

	updated, err := h.groups.Get(g.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, updated.ToResponse())
}

// RemoveGroupMember covers both leaving and kicking. The owner is never
// removable here: the group must be deleted or ownership transferred
// first.
func (h *Handler) RemoveGroupMember(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID := c.Param("user_id")

	g, member, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	if targetID == g.OwnerID {
		utils.Forbidden(c, "owner can only leave via deletion or ownership transfer")
		return
	}

	if targetID != userID {
		target, ok := g.Member(targetID)
		if !ok {
			utils.NotFound(c, "member not found")
			return
		}
		switch member.Role {
		case models.RoleAdmin:
		case models.RoleModerator:
			if target.Role != models.RoleMember {
				utils.Forbidden(c, "moderators can only remove members")
				return
			}
		default:
			utils.Forbidden(c, "only admins or moderators can remove members")
			return
		}
	}

	if err := h.groups.RemoveMember(g.ID, targetID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

func (h *Handler) UpdateGroupMember(c *gin.Context) {
	g, member, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if member.Role != models.RoleAdmin {
		utils.Forbidden(c, "only admins can change roles")
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.groups.UpdateRole(g.ID, c.Param("user_id"), models.GroupRole(req.Role)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

func (h *Handler) JoinGroup(c *gin.Context) {
	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	g, err := h.groups.JoinByInviteCode(req.Code, middleware.GetUserID(c))
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, g.ToResponse())
}

func (h *Handler) RegenerateInviteCode(c *gin.Context) {
	g, member, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if member.Role != models.RoleAdmin {
		utils.Forbidden(c, "only admins can regenerate the invite code")
		return
	}

	code, err := h.groups.RegenerateInviteCode(g.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, gin.H{"invite_code": code})
}

func (h *Handler) TransferGroupOwnership(c *gin.Context) {
	g, _, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if g.OwnerID != middleware.GetUserID(c) {
		utils.Forbidden(c, "only the owner can transfer ownership")
		return
	}

	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updated, err := h.groups.TransferOwnership(g.ID, req.UserID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, updated.ToResponse())
}

// memberGroup loads the group in the path and the caller's membership;
// non-members get NotFound rather than Forbidden so group ids do not leak
// membership.
func (h *Handler) memberGroup(c *gin.Context) (*models.Group, *models.GroupMember, error) {
	g, err := h.groups.Get(c.Param("id"))
	if err != nil {
		return nil, nil, err
	}
	member, ok := g.Member(middleware.GetUserID(c))
	if !ok {
		return nil, nil, &core.Error{Kind: core.KindNotFound, Message: "group not found"}
	}
	return g, member, nil
}
