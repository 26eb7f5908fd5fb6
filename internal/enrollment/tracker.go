package enrollment

import (
	"context"

	"github.com/datadues/campaign-api/internal/logger"
	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/store"
)

// Tracker flips the completed flag on user action records. Every other
// field is immutable through this path.
type Tracker struct {
	store *store.Store
	log   *logger.Logger
}

func NewTracker(entityStore *store.Store, baseLog *logger.Logger) *Tracker {
	return &Tracker{
		store: entityStore,
		log:   baseLog.With("component", "completion"),
	}
}

// SetCompletion patches completed and returns the full updated record, so
// callers can react to the new state without a second fetch. An unknown id
// is store.ErrNotFound and performs no mutation.
func (t *Tracker) SetCompletion(ctx context.Context, userActionID uint, completed bool) (*models.UserAction, error) {
	if err := t.store.PatchUserActionCompleted(ctx, userActionID, completed); err != nil {
		return nil, err
	}

	return t.store.FindUserAction(ctx, userActionID)
}
