package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/types"
	"github.com/datadues/campaign-api/internal/utils"
)

// ListCampaigns returns every campaign with its actions eagerly nested.
func (h *Handler) ListCampaigns(ctx *gin.Context) {
	campaigns, err := h.engine.CampaignsWithActions(ctx.Request.Context())

	if err != nil {
		h.log.Error("failed to list campaigns", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve campaigns"})
		return
	}

	response := make([]types.CampaignResponse, 0, len(campaigns))

	for _, campaign := range campaigns {
		response = append(response, campaignResponse(campaign))
	}

	ctx.JSON(http.StatusOK, response)
}

// CurrentCampaign returns the campaign the request is scoped to.
func (h *Handler) CurrentCampaign(ctx *gin.Context) {
	campaign, err := utils.GetCurrentCampaign(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No campaign resolved for this request"})
		return
	}

	actions, err := h.store.ActionsByCampaignIDs(ctx.Request.Context(), []uint{campaign.ID})

	if err != nil {
		h.log.Error("failed to load campaign actions", "error", err, "campaign_id", campaign.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve campaign"})
		return
	}

	withActions := *campaign
	withActions.Actions = actions

	ctx.JSON(http.StatusOK, campaignResponse(withActions))
}

// UserCampaignActions returns the actions of one campaign for one user. A
// user not enrolled in the campaign gets an empty list, since enrollment is
// optional.
func (h *Handler) UserCampaignActions(ctx *gin.Context) {
	userID, err := utils.GetUintParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaignID, err := utils.GetUintParam(ctx, "campaign_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actions, err := h.engine.UserCampaignActions(ctx.Request.Context(), userID, campaignID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			h.log.Error("failed to resolve campaign actions", "error", err, "user_id", userID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve actions"})
		}
		return
	}

	response := make([]types.ActionResponse, 0, len(actions))

	for _, action := range actions {
		response = append(response, actionResponse(action))
	}

	ctx.JSON(http.StatusOK, response)
}

func campaignResponse(campaign models.Campaign) types.CampaignResponse {
	actions := make([]types.ActionResponse, 0, len(campaign.Actions))

	for _, action := range campaign.Actions {
		actions = append(actions, actionResponse(action))
	}

	return types.CampaignResponse{
		ID:      campaign.ID,
		Slug:    campaign.Slug,
		Actions: actions,
	}
}

func actionResponse(action models.Action) types.ActionResponse {
	return types.ActionResponse{
		ID:          action.ID,
		CampaignID:  action.CampaignID,
		Title:       action.Title,
		Description: action.Description,
		Type:        action.Type,
		Config:      action.Config,
	}
}
