package traversal

import (
	"context"
	"errors"
	"testing"

	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/relations"
	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/testutil"
)

func newEngine(t *testing.T) (*Engine, context.Context) {
	t.Helper()
	conn := testutil.DB(t)
	return New(store.New(conn, testutil.Logger(t)), testutil.Logger(t)), context.Background()
}

func TestResolveCampaignActions(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	campaign := testutil.SeedCampaign(t, ctx, conn, "resolve")
	first := testutil.SeedAction(t, ctx, conn, campaign.ID, "First")
	second := testutil.SeedAction(t, ctx, conn, campaign.ID, "Second")

	root, err := engine.Resolve(ctx, relations.EntityCampaign, campaign.ID, []string{"actions"}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(root.Children))
	}

	seen := map[uint]bool{}
	for _, node := range root.Children {
		seen[node.Record.(*models.Action).ID] = true
	}
	if !seen[first.ID] || !seen[second.ID] {
		t.Fatalf("expected actions {%d, %d}, got %v", first.ID, second.ID, seen)
	}
}

func TestResolveMissingRoot(t *testing.T) {
	engine, ctx := newEngine(t)

	_, err := engine.Resolve(ctx, relations.EntityCampaign, 0, []string{"actions"}, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveEmptyLevelIsNotAnError(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	campaign := testutil.SeedCampaign(t, ctx, conn, "bare")

	root, err := engine.Resolve(ctx, relations.EntityCampaign, campaign.ID, []string{"actions"}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(root.Children) != 0 {
		t.Fatalf("expected no actions, got %d", len(root.Children))
	}
}

func TestResolveNestedWithSegmentFilter(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "nested")
	other := testutil.SeedCampaign(t, ctx, conn, "nested")
	wanted := testutil.SeedAction(t, ctx, conn, campaign.ID, "Wanted")
	testutil.SeedAction(t, ctx, conn, other.ID, "Unwanted")
	testutil.SeedMembership(t, ctx, conn, user.ID, campaign.ID)

	root, err := engine.Resolve(ctx, relations.EntityUser, user.ID,
		[]string{"campaigns", "actions"},
		Filters{"campaigns": {Field: "id", Value: campaign.ID}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 campaign after filter, got %d", len(root.Children))
	}

	campaignNode := root.Children[0]
	if campaignNode.Record.(*models.Campaign).ID != campaign.ID {
		t.Fatalf("filter kept the wrong campaign")
	}
	if len(campaignNode.Children) != 1 || campaignNode.Children[0].Record.(*models.Action).ID != wanted.ID {
		t.Fatalf("expected nested action %d, got %+v", wanted.ID, campaignNode.Children)
	}
}

func TestResolveFilterMismatchYieldsEmpty(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "mismatch")
	other := testutil.SeedCampaign(t, ctx, conn, "mismatch")
	testutil.SeedMembership(t, ctx, conn, user.ID, campaign.ID)

	// Filter names a campaign the user is not enrolled in.
	root, err := engine.Resolve(ctx, relations.EntityUser, user.ID,
		[]string{"campaigns", "actions"},
		Filters{"campaigns": {Field: "id", Value: other.ID}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(root.Children) != 0 {
		t.Fatalf("expected no campaigns, got %d", len(root.Children))
	}
}

func TestResolveOneCardinalityEdge(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "one")
	action := testutil.SeedAction(t, ctx, conn, campaign.ID, "Single")
	record := testutil.SeedUserAction(t, ctx, conn, user.ID, action.ID, campaign.ID)

	root, err := engine.Resolve(ctx, relations.EntityUserAction, record.ID, []string{"action"}, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected exactly one action, got %d", len(root.Children))
	}
	if root.Children[0].Record.(*models.Action).ID != action.ID {
		t.Fatal("resolved the wrong action")
	}
}

func TestResolveUnknownEdge(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	campaign := testutil.SeedCampaign(t, ctx, conn, "edges")

	if _, err := engine.Resolve(ctx, relations.EntityCampaign, campaign.ID, []string{"users"}, nil); err == nil {
		t.Fatal("expected error for unknown edge")
	}
}

func TestUserCampaignActionsNotEnrolled(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "optout")
	testutil.SeedAction(t, ctx, conn, campaign.ID, "Hidden")

	actions, err := engine.UserCampaignActions(ctx, user.ID, campaign.ID)
	if err != nil {
		t.Fatalf("expected empty result, not error: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %d", len(actions))
	}
}

func TestUserCampaignActionsEnrolled(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "optin")
	first := testutil.SeedAction(t, ctx, conn, campaign.ID, "First")
	second := testutil.SeedAction(t, ctx, conn, campaign.ID, "Second")
	testutil.SeedMembership(t, ctx, conn, user.ID, campaign.ID)

	actions, err := engine.UserCampaignActions(ctx, user.ID, campaign.ID)
	if err != nil {
		t.Fatalf("UserCampaignActions: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}

	seen := map[uint]bool{}
	for _, action := range actions {
		seen[action.ID] = true
	}
	if !seen[first.ID] || !seen[second.ID] {
		t.Fatalf("expected actions {%d, %d}", first.ID, second.ID)
	}
}

func TestUserActionsCampaignFilter(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaignOne := testutil.SeedCampaign(t, ctx, conn, "filter")
	campaignTwo := testutil.SeedCampaign(t, ctx, conn, "filter")
	actionOne := testutil.SeedAction(t, ctx, conn, campaignOne.ID, "One")
	actionTwo := testutil.SeedAction(t, ctx, conn, campaignTwo.ID, "Two")
	recordOne := testutil.SeedUserAction(t, ctx, conn, user.ID, actionOne.ID, campaignOne.ID)
	testutil.SeedUserAction(t, ctx, conn, user.ID, actionTwo.ID, campaignTwo.ID)

	all, err := engine.UserActions(ctx, user.ID, nil)
	if err != nil {
		t.Fatalf("UserActions: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}

	filtered, err := engine.UserActions(ctx, user.ID, &campaignOne.ID)
	if err != nil {
		t.Fatalf("UserActions filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != recordOne.ID {
		t.Fatalf("expected only record %d, got %+v", recordOne.ID, filtered)
	}
}

func TestCampaignsWithActions(t *testing.T) {
	conn := testutil.DB(t)
	engine, ctx := newEngine(t)

	campaign := testutil.SeedCampaign(t, ctx, conn, "eager")
	testutil.SeedAction(t, ctx, conn, campaign.ID, "Eager")
	empty := testutil.SeedCampaign(t, ctx, conn, "eager")

	campaigns, err := engine.CampaignsWithActions(ctx)
	if err != nil {
		t.Fatalf("CampaignsWithActions: %v", err)
	}

	var foundLoaded, foundEmpty bool
	for _, c := range campaigns {
		switch c.ID {
		case campaign.ID:
			foundLoaded = true
			if len(c.Actions) != 1 {
				t.Fatalf("expected 1 nested action, got %d", len(c.Actions))
			}
		case empty.ID:
			foundEmpty = true
			if c.Actions == nil || len(c.Actions) != 0 {
				t.Fatalf("expected empty (non-nil) actions, got %v", c.Actions)
			}
		}
	}
	if !foundLoaded || !foundEmpty {
		t.Fatal("seeded campaigns missing from listing")
	}
}
