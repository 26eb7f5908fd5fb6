package traversal

import (
	"context"
	"fmt"

	"github.com/datadues/campaign-api/internal/logger"
	"github.com/datadues/campaign-api/internal/models"
	"github.com/datadues/campaign-api/internal/relations"
	"github.com/datadues/campaign-api/internal/store"
)

// Filter is an equality constraint on one field of a path segment's children.
type Filter struct {
	Field string
	Value interface{}
}

// Filters maps a path segment, by edge name, to the constraint applied to
// the children produced at that segment. Ancestors are never filtered.
type Filters map[string]Filter

// Node is one resolved entity in the result tree. Children holds the
// entities reached along the next path segment: a full collection for a
// many edge, zero or one element for a one edge.
type Node struct {
	Type     relations.EntityType
	Record   interface{}
	Children []*Node
}

// Engine interprets traversal paths against the relationship graph. It
// resolves one level per round-trip: all children of every node at the
// previous level come back in a single batched fetch, so nesting depth,
// not parent count, bounds the number of queries.
type Engine struct {
	store *store.Store
	log   *logger.Logger
}

func New(entityStore *store.Store, baseLog *logger.Logger) *Engine {
	return &Engine{
		store: entityStore,
		log:   baseLog.With("component", "traversal"),
	}
}

// Resolve materializes the nested tree reached by following path from the
// root entity. A missing root is store.ErrNotFound; a level with no
// children is an empty collection, not a fault.
func (e *Engine) Resolve(ctx context.Context, rootType relations.EntityType, rootID uint, path []string, filters Filters) (*Node, error) {
	root, err := e.loadRoot(ctx, rootType, rootID)

	if err != nil {
		return nil, err
	}

	level := []*Node{root}
	current := rootType

	for _, segment := range path {
		edge, ok := relations.Outbound(current, segment)

		if !ok {
			return nil, fmt.Errorf("no edge %q from entity %q", segment, current)
		}

		if err := e.resolveLevel(ctx, edge, level, filters[segment]); err != nil {
			return nil, err
		}

		next := make([]*Node, 0)

		for _, parent := range level {
			next = append(next, parent.Children...)
		}

		level = next
		current = edge.To
	}

	return root, nil
}

func (e *Engine) loadRoot(ctx context.Context, rootType relations.EntityType, rootID uint) (*Node, error) {
	var record interface{}
	var err error

	switch rootType {
	case relations.EntityUser:
		record, err = e.store.FindUser(ctx, rootID)
	case relations.EntityCampaign:
		record, err = e.store.FindCampaign(ctx, rootID)
	case relations.EntityAction:
		record, err = e.store.FindAction(ctx, rootID)
	case relations.EntityUserAction:
		record, err = e.store.FindUserAction(ctx, rootID)
	default:
		return nil, fmt.Errorf("entity %q cannot root a traversal", rootType)
	}

	if err != nil {
		return nil, err
	}

	return &Node{Type: rootType, Record: record}, nil
}

// resolveLevel fetches the children of every node in parents along edge and
// attaches them, applying filter to the fetched children.
func (e *Engine) resolveLevel(ctx context.Context, edge relations.Edge, parents []*Node, filter Filter) error {
	if len(parents) == 0 {
		return nil
	}

	parentIDs := make([]uint, 0, len(parents))

	for _, parent := range parents {
		parentIDs = append(parentIDs, recordID(parent.Record))
	}

	byParent, err := e.fetchChildren(ctx, edge, parents, parentIDs)

	if err != nil {
		return err
	}

	for _, parent := range parents {
		children := byParent[recordID(parent.Record)]

		kept := make([]*Node, 0, len(children))

		for _, child := range children {
			if filter.Field != "" && !matchesField(child.Record, filter.Field, filter.Value) {
				continue
			}

			kept = append(kept, child)
		}

		parent.Children = kept
	}

	return nil
}

// fetchChildren performs the one batched store round-trip for a level and
// groups the results by parent id. The switch is the closed edge set of the
// relationship graph rendered as fetch plans.
func (e *Engine) fetchChildren(ctx context.Context, edge relations.Edge, parents []*Node, parentIDs []uint) (map[uint][]*Node, error) {
	byParent := make(map[uint][]*Node)

	switch {
	case edge.From == relations.EntityUser && edge.Name == "campaigns":
		// Many-to-many through the membership join: resolve the join rows
		// for every parent, then the campaigns they point at, still one
		// batch per table.
		memberships, err := e.store.MembershipsByUserIDs(ctx, parentIDs)

		if err != nil {
			return nil, err
		}

		campaignIDs := make([]uint, 0, len(memberships))

		for _, membership := range memberships {
			campaignIDs = append(campaignIDs, membership.CampaignID)
		}

		campaigns, err := e.store.CampaignsByIDs(ctx, campaignIDs)

		if err != nil {
			return nil, err
		}

		campaignsByID := make(map[uint]models.Campaign, len(campaigns))

		for _, campaign := range campaigns {
			campaignsByID[campaign.ID] = campaign
		}

		for _, membership := range memberships {
			campaign, ok := campaignsByID[membership.CampaignID]

			if !ok {
				continue
			}

			node := &Node{Type: edge.To, Record: &campaign}
			byParent[membership.UserID] = append(byParent[membership.UserID], node)
		}

	case edge.From == relations.EntityCampaign && edge.Name == "actions":
		actions, err := e.store.ActionsByCampaignIDs(ctx, parentIDs)

		if err != nil {
			return nil, err
		}

		for _, action := range actions {
			node := &Node{Type: edge.To, Record: &action}
			byParent[action.CampaignID] = append(byParent[action.CampaignID], node)
		}

	case edge.From == relations.EntityUser && edge.Name == "userActions":
		userActions, err := e.store.UserActionsByUserIDs(ctx, parentIDs)

		if err != nil {
			return nil, err
		}

		for _, userAction := range userActions {
			node := &Node{Type: edge.To, Record: &userAction}
			byParent[userAction.UserID] = append(byParent[userAction.UserID], node)
		}

	case edge.From == relations.EntityUserAction && edge.Name == "action":
		actionIDs := make([]uint, 0, len(parents))

		for _, parent := range parents {
			actionIDs = append(actionIDs, parent.Record.(*models.UserAction).ActionID)
		}

		actions, err := e.store.ActionsByIDs(ctx, actionIDs)

		if err != nil {
			return nil, err
		}

		actionsByID := make(map[uint]models.Action, len(actions))

		for _, action := range actions {
			actionsByID[action.ID] = action
		}

		for _, parent := range parents {
			userAction := parent.Record.(*models.UserAction)

			if action, ok := actionsByID[userAction.ActionID]; ok {
				node := &Node{Type: edge.To, Record: &action}
				byParent[userAction.ID] = append(byParent[userAction.ID], node)
			}
		}

	default:
		return nil, fmt.Errorf("edge %q from %q has no fetch plan", edge.Name, edge.From)
	}

	return byParent, nil
}
