package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/relations"
	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/testutil"
	"github.com/datadues/campaign-api/internal/traversal"
)

func newCoordinator(t *testing.T) (*Coordinator, *store.Store, context.Context) {
	t.Helper()
	conn := testutil.DB(t)
	entityStore := store.New(conn, testutil.Logger(t))
	return NewCoordinator(entityStore, testutil.Logger(t)), entityStore, context.Background()
}

func cleanupMemberships(t *testing.T, userID uint) {
	t.Helper()
	conn := testutil.DB(t)
	t.Cleanup(func() {
		conn.Unscoped().Where("user_id = ?", userID).Delete(&models.UserCampaign{})
	})
}

func TestEnroll(t *testing.T) {
	conn := testutil.DB(t)
	coordinator, entityStore, ctx := newCoordinator(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "enroll")
	cleanupMemberships(t, user.ID)

	ok, err := coordinator.Enroll(ctx, user.ID, campaign.ID, "support")
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for first enrollment")
	}

	memberships, err := entityStore.MembershipsByUserIDs(ctx, []uint{user.ID})
	if err != nil {
		t.Fatalf("memberships: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected exactly 1 membership, got %d", len(memberships))
	}
	if memberships[0].CampaignID != campaign.ID {
		t.Fatal("membership points at the wrong campaign")
	}

	var data map[string]string
	if err := json.Unmarshal(memberships[0].Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["motive"] != "support" {
		t.Fatalf("expected motive %q, got %q", "support", data["motive"])
	}
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	conn := testutil.DB(t)
	coordinator, entityStore, ctx := newCoordinator(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "twice")
	other := testutil.SeedCampaign(t, ctx, conn, "twice")
	cleanupMemberships(t, user.ID)

	if ok, err := coordinator.Enroll(ctx, user.ID, campaign.ID, "first"); err != nil || !ok {
		t.Fatalf("first enrollment: ok=%v err=%v", ok, err)
	}

	// A second campaign is still one membership too many.
	ok, err := coordinator.Enroll(ctx, user.ID, other.ID, "second")
	if err != nil {
		t.Fatalf("second enrollment must not error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for enrolled user")
	}

	// Retrying keeps returning false.
	if ok, err := coordinator.Enroll(ctx, user.ID, other.ID, "third"); err != nil || ok {
		t.Fatalf("retry: ok=%v err=%v", ok, err)
	}

	memberships, err := entityStore.MembershipsByUserIDs(ctx, []uint{user.ID})
	if err != nil {
		t.Fatalf("memberships: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected exactly 1 membership, got %d", len(memberships))
	}
}

func TestEnrollMissingReferences(t *testing.T) {
	conn := testutil.DB(t)
	coordinator, _, ctx := newCoordinator(t)

	user := testutil.SeedUser(t, ctx, conn)
	campaign := testutil.SeedCampaign(t, ctx, conn, "missing")

	if _, err := coordinator.Enroll(ctx, user.ID, 0, "motive"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing campaign: expected ErrNotFound, got %v", err)
	}
	if _, err := coordinator.Enroll(ctx, 0, campaign.ID, "motive"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing user: expected ErrNotFound, got %v", err)
	}
}

func TestEnrollConcurrent(t *testing.T) {
	conn := testutil.DB(t)
	coordinator, entityStore, ctx := newCoordinator(t)

	user := testutil.SeedUser(t, ctx, conn)
	cleanupMemberships(t, user.ID)

	const attempts = 8
	campaigns := make([]*models.Campaign, attempts)
	for i := range campaigns {
		campaigns[i] = testutil.SeedCampaign(t, ctx, conn, "race")
	}

	results := make([]bool, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = coordinator.Enroll(ctx, user.ID, campaigns[i].ID, "race")
		}(i)
	}
	wg.Wait()

	winners := 0
	for i := 0; i < attempts; i++ {
		if errs[i] != nil {
			t.Fatalf("attempt %d errored: %v", i, errs[i])
		}
		if results[i] {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly 1 winner, got %d", winners)
	}

	memberships, err := entityStore.MembershipsByUserIDs(ctx, []uint{user.ID})
	if err != nil {
		t.Fatalf("memberships: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected exactly 1 membership row, got %d", len(memberships))
	}
}

// The end-to-end path: create a campaign with actions, enroll a user, then
// traverse user -> campaigns -> actions and find everything nested.
func TestEnrollThenTraverse(t *testing.T) {
	conn := testutil.DB(t)
	coordinator, entityStore, ctx := newCoordinator(t)
	engine := traversal.New(entityStore, testutil.Logger(t))

	campaign := testutil.SeedCampaign(t, ctx, conn, "spring")
	first := testutil.SeedAction(t, ctx, conn, campaign.ID, "Sign the petition")
	second := testutil.SeedAction(t, ctx, conn, campaign.ID, "Share the page")
	user := testutil.SeedUser(t, ctx, conn)
	cleanupMemberships(t, user.ID)

	if ok, err := coordinator.Enroll(ctx, user.ID, campaign.ID, "support"); err != nil || !ok {
		t.Fatalf("enroll: ok=%v err=%v", ok, err)
	}

	root, err := engine.Resolve(ctx, relations.EntityUser, user.ID, []string{"campaigns", "actions"}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(root.Children))
	}

	campaignNode := root.Children[0]
	if campaignNode.Record.(*models.Campaign).ID != campaign.ID {
		t.Fatal("traversal found the wrong campaign")
	}

	seen := map[uint]bool{}
	for _, actionNode := range campaignNode.Children {
		seen[actionNode.Record.(*models.Action).ID] = true
	}
	if len(seen) != 2 || !seen[first.ID] || !seen[second.ID] {
		t.Fatalf("expected both actions nested, got %v", seen)
	}
}
