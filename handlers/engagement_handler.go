package handlers

import (
	"strconv"

	"pulsehub/helper"
	"pulsehub/models"
	"pulsehub/services"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementService services.EngagementService
	Helper            *helper.HTTPHelper
}

func NewEngagementHandler(engagementService services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		Helper:            &helper.HTTPHelper{},
	}
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	userID, _ := c.Get("user_id")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	result, err := h.engagementService.ToggleLike(uint(postID), userID.(uint))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Like toggled", result)
}

func (h *EngagementHandler) AddComment(c *gin.Context) {
	userID, _ := c.Get("user_id")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.engagementService.AddComment(uint(postID), userID.(uint), req.Content)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment added", comment)
}

func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	userID, _ := c.Get("user_id")
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid comment ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.engagementService.DeleteComment(uint(commentID), userID.(uint)); err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted", h.Helper.EmptyJsonMap())
}

func (h *EngagementHandler) ToggleSave(c *gin.Context) {
	userID, _ := c.Get("user_id")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid post ID", h.Helper.EmptyJsonMap())
		return
	}

	result, err := h.engagementService.ToggleSave(uint(postID), userID.(uint))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Save toggled", result)
}

func (h *EngagementHandler) ToggleFollow(c *gin.Context) {
	userID, _ := c.Get("user_id")
	followingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}

	result, err := h.engagementService.ToggleFollow(uint(followingID), userID.(uint))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Follow toggled", result)
}
