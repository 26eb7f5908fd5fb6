package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/types"
	"github.com/datadues/campaign-api/internal/utils"
)

type EnrollRequest struct {
	Motive string `json:"motive" binding:"required"`
}

// Enroll adds the caller to the current campaign. An already-enrolled
// caller gets ok=false with status 200: that outcome is informational, not
// a fault.
func (h *Handler) Enroll(ctx *gin.Context) {
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

	var body EnrollRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	enrolled, err := h.coordinator.Enroll(ctx.Request.Context(), currentUser.ID, campaign.ID, body.Motive)

	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User or campaign not found"})
		case errors.Is(err, store.ErrConstraintViolation):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Enrollment references a nonexistent record"})
		default:
			h.log.Error("failed to enroll user", "error", err, "user_id", currentUser.ID, "campaign_id", campaign.ID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll"})
		}
		return
	}

	if enrolled {
		h.notifier.NotifyEnrollment(campaign.Slug, currentUser.Username, body.Motive)
		BroadcastRefresh(strconv.FormatUint(uint64(campaign.ID), 10))
	}

	ctx.JSON(http.StatusOK, types.OkResponse{Ok: enrolled})
}
