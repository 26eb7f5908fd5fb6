package traversal

import (
	"context"

	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/relations"
)

// CampaignsWithActions lists every campaign with its actions eagerly
// attached, in two batched fetches total.
func (e *Engine) CampaignsWithActions(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := e.store.ListCampaigns(ctx)

	if err != nil {
		return nil, err
	}

	campaignIDs := make([]uint, 0, len(campaigns))

	for _, campaign := range campaigns {
		campaignIDs = append(campaignIDs, campaign.ID)
	}

	actions, err := e.store.ActionsByCampaignIDs(ctx, campaignIDs)

	if err != nil {
		return nil, err
	}

	actionsByCampaign := make(map[uint][]models.Action)

	for _, action := range actions {
		actionsByCampaign[action.CampaignID] = append(actionsByCampaign[action.CampaignID], action)
	}

	for i := range campaigns {
		campaigns[i].Actions = actionsByCampaign[campaigns[i].ID]

		if campaigns[i].Actions == nil {
			campaigns[i].Actions = []models.Action{}
		}
	}

	return campaigns, nil
}

// UserCampaignActions returns the actions of the given campaign if the user
// is enrolled in it. A user without a matching membership gets an empty
// collection, because enrollment is optional; only a missing user is
// store.ErrNotFound.
func (e *Engine) UserCampaignActions(ctx context.Context, userID, campaignID uint) ([]models.Action, error) {
	root, err := e.Resolve(ctx, relations.EntityUser, userID,
		[]string{"campaigns", "actions"},
		Filters{"campaigns": {Field: "id", Value: campaignID}})

	if err != nil {
		return nil, err
	}

	actions := []models.Action{}

	for _, campaignNode := range root.Children {
		for _, actionNode := range campaignNode.Children {
			actions = append(actions, *actionNode.Record.(*models.Action))
		}
	}

	return actions, nil
}

// UserActions returns the user's action records, optionally narrowed to one
// campaign.
func (e *Engine) UserActions(ctx context.Context, userID uint, campaignID *uint) ([]models.UserAction, error) {
	filters := Filters{}

	if campaignID != nil {
		filters["userActions"] = Filter{Field: "campaignId", Value: *campaignID}
	}

	root, err := e.Resolve(ctx, relations.EntityUser, userID, []string{"userActions"}, filters)

	if err != nil {
		return nil, err
	}

	userActions := []models.UserAction{}

	for _, node := range root.Children {
		userActions = append(userActions, *node.Record.(*models.UserAction))
	}

	return userActions, nil
}
