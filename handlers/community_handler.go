package handlers

import (
	"strconv"

	"pulsehub/helper"
	"pulsehub/middleware"
	"pulsehub/models"
	"pulsehub/services"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	membershipService services.MembershipService
	Helper            *helper.HTTPHelper
}

func NewCommunityHandler(membershipService services.MembershipService) *CommunityHandler {
	return &CommunityHandler{
		membershipService: membershipService,
		Helper:            &helper.HTTPHelper{},
	}
}

func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	community, err := h.membershipService.CreateCommunity(userID.(uint), req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Community created", community)
}

func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid community ID", h.Helper.EmptyJsonMap())
		return
	}

	detail, err := h.membershipService.GetCommunity(uint(id), middleware.ViewerID(c))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Community", detail)
}

func (h *CommunityHandler) GetCommunities(c *gin.Context) {
	var params models.CommunityListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	communities, err := h.membershipService.ListCommunities(params)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Communities", communities)
}

func (h *CommunityHandler) ToggleSubscription(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid community ID", h.Helper.EmptyJsonMap())
		return
	}

	subscribed, err := h.membershipService.ToggleSubscription(uint(id), userID.(uint))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Subscription toggled", gin.H{"subscribed": subscribed})
}

func (h *CommunityHandler) ToggleNotifications(c *gin.Context) {
	userID, _ := c.Get("user_id")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid community ID", h.Helper.EmptyJsonMap())
		return
	}

	enabled, err := h.membershipService.ToggleNotifications(uint(id), userID.(uint))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Notifications toggled", gin.H{"notifications_enabled": enabled})
}
