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

type CreateDataDuesRequest struct {
	Data map[string]interface{} `json:"data"`
}

// CreateDataDuesAction records the caller's data-dues submission against
// the current campaign's data_dues action. Validation problems come back in
// the errors field of a 200 response rather than failing the request, so
// the client can render them inline.
func (h *Handler) CreateDataDuesAction(ctx *gin.Context) {
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

	var body CreateDataDuesRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if len(body.Data) == 0 {
		ctx.JSON(http.StatusOK, gin.H{
			"errors":      gin.H{"data": "is required"},
			"user_action": nil,
		})
		return
	}

	action, err := h.store.FirstActionOfType(ctx.Request.Context(), campaign.ID, types.ActionTypeDataDues)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Campaign has no data dues action"})
		} else {
			h.log.Error("failed to find data dues action", "error", err, "campaign_id", campaign.ID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	userAction := models.UserAction{
		UserID:     currentUser.ID,
		ActionID:   action.ID,
		CampaignID: campaign.ID,
		Completed:  true,
	}

	if err := h.store.CreateUserAction(ctx.Request.Context(), &userAction); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			ctx.JSON(http.StatusOK, gin.H{
				"errors":      gin.H{"data_dues": "already submitted"},
				"user_action": nil,
			})
		case errors.Is(err, store.ErrConstraintViolation):
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Submission references a nonexistent record"})
		default:
			h.log.Error("failed to create user action", "error", err, "user_id", currentUser.ID)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	response := userActionResponse(userAction, action)

	ctx.JSON(http.StatusOK, gin.H{
		"errors":      nil,
		"user_action": response,
	})
}
