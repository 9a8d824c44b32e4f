package handlers

import (
	"strconv"

	"pulsehub/helper"
	"pulsehub/models"
	"pulsehub/services"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	complaintService services.ComplaintService
	Helper           *helper.HTTPHelper
}

func NewComplaintHandler(complaintService services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
		Helper:           &helper.HTTPHelper{},
	}
}

func (h *ComplaintHandler) FileComplaint(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	complaint, err := h.complaintService.File(userID.(uint), req)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Complaint filed", complaint)
}

func (h *ComplaintHandler) GetPendingComplaints(c *gin.Context) {
	userID, _ := c.Get("user_id")
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid community ID", h.Helper.EmptyJsonMap())
		return
	}

	complaints, err := h.complaintService.PendingComplaints(uint(communityID), userID.(uint))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Pending complaints", gin.H{"complaints": complaints})
}

func (h *ComplaintHandler) DecideComplaint(c *gin.Context) {
	userID, _ := c.Get("user_id")
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid complaint ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	complaint, err := h.complaintService.Decide(uint(complaintID), userID.(uint), req.Status)
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Complaint decided", complaint)
}
