package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"homeroom/core"
	"homeroom/middleware"
	"homeroom/models"
	"homeroom/utils"
)

type SendMessageRequest struct {
	Kind        string              `json:"kind" binding:"required,oneof=direct group"`
	TargetID    string              `json:"target_id" binding:"required"`
	Content     string              `json:"content"`
	Attachments []models.Attachment `json:"attachments"`
}

type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	m, err := h.messages.Post(
		middleware.GetUserID(c),
		models.MessageKind(req.Kind),
		req.TargetID,
		req.Content,
		req.Attachments,
	)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, m)
}

func (h *Handler) EditMessage(c *gin.Context) {
	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	m, err := h.senderMessage(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	updated, err := h.messages.Edit(m.ID, req.Content)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, updated)
}

func (h *Handler) DeleteMessage(c *gin.Context) {
	m, err := h.senderMessage(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	if err := h.messages.Delete(m.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

func (h *Handler) MarkMessageRead(c *gin.Context) {
	if err := h.messages.MarkRead(c.Param("id"), middleware.GetUserID(c)); err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, nil)
}

func (h *Handler) GetDirectMessages(c *gin.Context) {
	limit, before, ok := pageParams(c)
	if !ok {
		return
	}

	msgs, err := h.messages.FetchDirect(middleware.GetUserID(c), c.Param("user_id"), limit, before)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	utils.Success(c, msgs)
}

func (h *Handler) GetGroupMessages(c *gin.Context) {
	g, _, err := h.memberGroup(c)
	if err != nil {
		utils.Error(c, err)
		return
	}

	limit, before, ok := pageParams(c)
	if !ok {
		return
	}

	msgs, err := h.messages.FetchGroup(g.ID, limit, before)
	if err != nil {
		utils.Error(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	utils.Success(c, msgs)
}

// senderMessage loads the message and checks the sender-only edit/delete
// policy that the conversation store leaves to its caller.
func (h *Handler) senderMessage(c *gin.Context) (*models.Message, error) {
	m, err := h.messages.Get(c.Param("id"))
	if err != nil {
		return nil, err
	}
	if m.SenderID != middleware.GetUserID(c) {
		return nil, &core.Error{Kind: core.KindForbidden, Message: "only the sender can modify a message"}
	}
	return m, nil
}

func pageParams(c *gin.Context) (int, time.Time, bool) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	var before time.Time
	if raw := c.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequest(c, "before must be RFC3339")
			return 0, time.Time{}, false
		}
		before = parsed
	}
	return limit, before, true
}
