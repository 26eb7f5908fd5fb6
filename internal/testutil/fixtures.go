package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/datadues/campaign-api/internal/models"
)

// Fixtures hard-delete themselves on cleanup; soft deletes would keep the
// unique indexes occupied across test runs.

func SeedUser(tb testing.TB, ctx context.Context, conn *gorm.DB) *models.User {
	tb.Helper()
	u := &models.User{
		Email:      uuid.NewString() + "@example.org",
		Username:   "member-" + uuid.NewString()[:8],
		Name:       "Test Member",
		ExternalID: uuid.NewString(),
	}
	if err := conn.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	tb.Cleanup(func() {
		conn.Unscoped().Delete(u)
	})
	return u
}

func SeedCampaign(tb testing.TB, ctx context.Context, conn *gorm.DB, slugPrefix string) *models.Campaign {
	tb.Helper()
	c := &models.Campaign{
		Slug: slugPrefix + "-" + uuid.NewString()[:8],
	}
	if err := conn.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed campaign: %v", err)
	}
	tb.Cleanup(func() {
		conn.Unscoped().Delete(c)
	})
	return c
}

func SeedAction(tb testing.TB, ctx context.Context, conn *gorm.DB, campaignID uint, title string) *models.Action {
	tb.Helper()
	a := &models.Action{
		CampaignID:  campaignID,
		Title:       title,
		Description: "Do the thing",
		Type:        "checkbox",
		Config:      datatypes.JSON([]byte(`{}`)),
	}
	if err := conn.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed action: %v", err)
	}
	tb.Cleanup(func() {
		conn.Unscoped().Delete(a)
	})
	return a
}

func SeedMembership(tb testing.TB, ctx context.Context, conn *gorm.DB, userID, campaignID uint) *models.UserCampaign {
	tb.Helper()
	m := &models.UserCampaign{
		UserID:     userID,
		CampaignID: campaignID,
		Data:       datatypes.JSON([]byte(`{"motive":"testing"}`)),
	}
	if err := conn.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed membership: %v", err)
	}
	tb.Cleanup(func() {
		conn.Unscoped().Delete(m)
	})
	return m
}

func SeedUserAction(tb testing.TB, ctx context.Context, conn *gorm.DB, userID, actionID, campaignID uint) *models.UserAction {
	tb.Helper()
	ua := &models.UserAction{
		UserID:     userID,
		ActionID:   actionID,
		CampaignID: campaignID,
	}
	if err := conn.WithContext(ctx).Create(ua).Error; err != nil {
		tb.Fatalf("seed user action: %v", err)
	}
	tb.Cleanup(func() {
		conn.Unscoped().Delete(ua)
	})
	return ua
}
