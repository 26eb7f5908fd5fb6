package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/datadues/campaign-api/internal/logger"
	"github.com/datadues/campaign-api/internal/models"
)

// Store is the durable record repository. It owns the translation from
// gorm's error surface to the package sentinels; callers never see driver
// errors.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(conn *gorm.DB, baseLog *logger.Logger) *Store {
	return &Store{
		db:  conn,
		log: baseLog.With("component", "store"),
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConstraintViolation
	default:
		return err
	}
}

func (s *Store) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) FindCampaign(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign

	if err := s.db.WithContext(ctx).First(&campaign, id).Error; err != nil {
		return nil, translate(err)
	}

	return &campaign, nil
}

func (s *Store) FindCampaignBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	var campaign models.Campaign

	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&campaign).Error; err != nil {
		return nil, translate(err)
	}

	return &campaign, nil
}

func (s *Store) FindUserAction(ctx context.Context, id uint) (*models.UserAction, error) {
	var userAction models.UserAction

	if err := s.db.WithContext(ctx).First(&userAction, id).Error; err != nil {
		return nil, translate(err)
	}

	return &userAction, nil
}

func (s *Store) FindAction(ctx context.Context, id uint) (*models.Action, error) {
	var action models.Action

	if err := s.db.WithContext(ctx).First(&action, id).Error; err != nil {
		return nil, translate(err)
	}

	return &action, nil
}

// FirstActionOfType returns the oldest action of the given type within a
// campaign, or ErrNotFound when the campaign has none.
func (s *Store) FirstActionOfType(ctx context.Context, campaignID uint, actionType string) (*models.Action, error) {
	var action models.Action

	err := s.db.WithContext(ctx).
		Where("campaign_id = ? AND type = ?", campaignID, actionType).
		Order("id ASC").
		First(&action).Error

	if err != nil {
		return nil, translate(err)
	}

	return &action, nil
}

func (s *Store) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign

	if err := s.db.WithContext(ctx).Order("id ASC").Find(&campaigns).Error; err != nil {
		return nil, translate(err)
	}

	return campaigns, nil
}

// The *ByIDs / *ByCampaignIDs / *ByUserIDs fetchers below back the traversal
// engine's per-level batching: one round-trip resolves the children of every
// parent at a level. Results are ordered by id so sibling collections come
// back deterministic.

func (s *Store) CampaignsByIDs(ctx context.Context, ids []uint) ([]models.Campaign, error) {
	var campaigns []models.Campaign

	if len(ids) == 0 {
		return campaigns, nil
	}

	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&campaigns).Error; err != nil {
		return nil, translate(err)
	}

	return campaigns, nil
}

func (s *Store) ActionsByIDs(ctx context.Context, ids []uint) ([]models.Action, error) {
	var actions []models.Action

	if len(ids) == 0 {
		return actions, nil
	}

	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&actions).Error; err != nil {
		return nil, translate(err)
	}

	return actions, nil
}

func (s *Store) ActionsByCampaignIDs(ctx context.Context, campaignIDs []uint) ([]models.Action, error) {
	var actions []models.Action

	if len(campaignIDs) == 0 {
		return actions, nil
	}

	if err := s.db.WithContext(ctx).Where("campaign_id IN ?", campaignIDs).Order("id ASC").Find(&actions).Error; err != nil {
		return nil, translate(err)
	}

	return actions, nil
}

func (s *Store) MembershipsByUserIDs(ctx context.Context, userIDs []uint) ([]models.UserCampaign, error) {
	var memberships []models.UserCampaign

	if len(userIDs) == 0 {
		return memberships, nil
	}

	if err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Order("id ASC").Find(&memberships).Error; err != nil {
		return nil, translate(err)
	}

	return memberships, nil
}

func (s *Store) UserActionsByUserIDs(ctx context.Context, userIDs []uint) ([]models.UserAction, error) {
	var userActions []models.UserAction

	if len(userIDs) == 0 {
		return userActions, nil
	}

	if err := s.db.WithContext(ctx).Where("user_id IN ?", userIDs).Order("id ASC").Find(&userActions).Error; err != nil {
		return nil, translate(err)
	}

	return userActions, nil
}

func (s *Store) CreateUserCampaign(ctx context.Context, membership *models.UserCampaign) error {
	return translate(s.db.WithContext(ctx).Create(membership).Error)
}

func (s *Store) CreateUserAction(ctx context.Context, userAction *models.UserAction) error {
	return translate(s.db.WithContext(ctx).Create(userAction).Error)
}

// PatchUserActionCompleted updates only the completed column. It reports
// ErrNotFound when no row matched rather than succeeding vacuously.
func (s *Store) PatchUserActionCompleted(ctx context.Context, id uint, completed bool) error {
	result := s.db.WithContext(ctx).
		Model(&models.UserAction{}).
		Where("id = ?", id).
		Update("completed", completed)

	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
