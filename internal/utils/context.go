package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/middleware"
	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

func GetCurrentCampaign(ctx *gin.Context) (*models.Campaign, error) {
	campaign, exists := ctx.Get(types.ContextCampaignKey)

	if !exists {
		return nil, fmt.Errorf("No campaign resolved for this request")
	}

	currentCampaign, ok := campaign.(*models.Campaign)

	if !ok {
		return nil, fmt.Errorf("Invalid campaign type in context")
	}

	return currentCampaign, nil
}
