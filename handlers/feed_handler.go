package handlers

import (
	"pulsehub/helper"
	"pulsehub/middleware"
	"pulsehub/models"
	"pulsehub/services"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService services.FeedService
	Helper      *helper.HTTPHelper
}

func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		Helper:      &helper.HTTPHelper{},
	}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	var params models.FeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	posts, total, err := h.feedService.List(params, middleware.ViewerID(c))
	if err != nil {
		h.Helper.SendDomainError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Feed", gin.H{
		"posts":      posts,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}
