package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/types"
	"github.com/datadues/campaign-api/internal/utils"
)

type UpdateUserActionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ListUserActions returns a user's action records, optionally narrowed by
// the campaign_id query parameter.
func (h *Handler) ListUserActions(ctx *gin.Context) {
	userID, err := utils.GetUintParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var campaignID *uint

	if raw := ctx.Query("campaign_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign_id"})
			return
		}

		value := uint(parsed)
		campaignID = &value
	}

	userActions, err := h.engine.UserActions(ctx.Request.Context(), userID, campaignID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			h.log.Error("failed to list user actions", "error", err, "user_id", userID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user actions"})
		}
		return
	}

	response := make([]types.UserActionResponse, 0, len(userActions))

	for _, userAction := range userActions {
		response = append(response, userActionResponse(userAction, nil))
	}

	ctx.JSON(http.StatusOK, response)
}

// MyActions flattens the current campaign's actions together with the
// caller's progress on each. Actions the caller has no record for yet come
// back with a nil userActionId and completed false.
func (h *Handler) MyActions(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	campaign, err := utils.GetCurrentCampaign(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No campaign resolved for this request"})
		return
	}

	actions, err := h.store.ActionsByCampaignIDs(ctx.Request.Context(), []uint{campaign.ID})

	if err != nil {
		h.log.Error("failed to load campaign actions", "error", err, "campaign_id", campaign.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve actions"})
		return
	}

	userActions, err := h.engine.UserActions(ctx.Request.Context(), currentUser.ID, &campaign.ID)

	if err != nil {
		h.log.Error("failed to load user actions", "error", err, "user_id", currentUser.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve actions"})
		return
	}

	recordsByAction := make(map[uint]models.UserAction, len(userActions))

	for _, userAction := range userActions {
		recordsByAction[userAction.ActionID] = userAction
	}

	summaries := make([]types.UserActionSummary, 0, len(actions))

	for _, action := range actions {
		summary := types.UserActionSummary{
			ActionID:    action.ID,
			CampaignID:  action.CampaignID,
			Title:       action.Title,
			Description: action.Description,
			Type:        action.Type,
			Config:      action.Config,
		}

		if record, ok := recordsByAction[action.ID]; ok {
			recordID := record.ID
			summary.UserActionID = &recordID
			summary.Completed = record.Completed
		}

		summaries = append(summaries, summary)
	}

	ctx.JSON(http.StatusOK, summaries)
}

// UpdateUserAction patches the completed flag of one record and returns the
// updated record with its action nested.
func (h *Handler) UpdateUserAction(ctx *gin.Context) {
	userActionID, err := utils.GetUintParam(ctx, "user_action_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateUserActionRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userAction, err := h.tracker.SetCompletion(ctx.Request.Context(), userActionID, *body.Completed)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User action not found"})
		} else {
			h.log.Error("failed to update user action", "error", err, "user_action_id", userActionID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user action"})
		}
		return
	}

	action, err := h.store.FindAction(ctx.Request.Context(), userAction.ActionID)

	if err != nil {
		h.log.Error("failed to load action for user action", "error", err, "action_id", userAction.ActionID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve action"})
		return
	}

	BroadcastRefresh(strconv.FormatUint(uint64(userAction.CampaignID), 10))

	ctx.JSON(http.StatusOK, userActionResponse(*userAction, action))
}

func userActionResponse(userAction models.UserAction, action *models.Action) types.UserActionResponse {
	response := types.UserActionResponse{
		ID:         userAction.ID,
		UserID:     userAction.UserID,
		ActionID:   userAction.ActionID,
		CampaignID: userAction.CampaignID,
		Completed:  userAction.Completed,
	}

	if action != nil {
		nested := actionResponse(*action)
		response.Action = &nested
	}

	return response
}
