package enrollment

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"github.com/datadues/campaign-api/internal/logger"
	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/store"
)

// Coordinator owns the one mutating path onto the user-campaign relation.
type Coordinator struct {
	store *store.Store
	log   *logger.Logger
}

func NewCoordinator(entityStore *store.Store, baseLog *logger.Logger) *Coordinator {
	return &Coordinator{
		store: entityStore,
		log:   baseLog.With("component", "enrollment"),
	}
}

// Enroll creates the membership binding user and campaign, attaching the
// motive as relation metadata. A user who already holds a membership gets
// (false, nil): being enrolled is a normal outcome, not an error. Missing
// users or campaigns are errors, since the request references something
// that does not exist.
//
// The membership check races against concurrent enrollments, so the insert
// relies on the store's unique index over user_id: the loser of the race
// surfaces as store.ErrDuplicate and is folded into the same (false, nil)
// outcome the check produces.
func (c *Coordinator) Enroll(ctx context.Context, userID, campaignID uint, motive string) (bool, error) {
	user, err := c.store.FindUser(ctx, userID)

	if err != nil {
		return false, err
	}

	campaign, err := c.store.FindCampaign(ctx, campaignID)

	if err != nil {
		return false, err
	}

	memberships, err := c.store.MembershipsByUserIDs(ctx, []uint{user.ID})

	if err != nil {
		return false, err
	}

	if len(memberships) > 0 {
		return false, nil
	}

	data, err := json.Marshal(map[string]string{"motive": motive})

	if err != nil {
		return false, err
	}

	membership := models.UserCampaign{
		UserID:     user.ID,
		CampaignID: campaign.ID,
		Data:       datatypes.JSON(data),
	}

	if err := c.store.CreateUserCampaign(ctx, &membership); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to a concurrent enrollment.
			return false, nil
		}

		return false, err
	}

	c.log.Info("user enrolled", "user_id", user.ID, "campaign_id", campaign.ID)

	return true, nil
}
