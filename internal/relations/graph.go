package relations

// EntityType names one of the stored record kinds.
type EntityType string

const (
	EntityUser         EntityType = "user"
	EntityCampaign     EntityType = "campaign"
	EntityAction       EntityType = "action"
	EntityUserCampaign EntityType = "user_campaign"
	EntityUserAction   EntityType = "user_action"
)

// Cardinality of an edge's target side.
type Cardinality int

const (
	// One yields a single object or nil.
	One Cardinality = iota
	// Many yields a collection, possibly empty.
	Many
)

// Edge is a named relationship from one entity kind to another. For
// many-to-many edges Join names the entity carrying the relation and
// Payload the field holding its metadata.
type Edge struct {
	Name        string
	From        EntityType
	To          EntityType
	Cardinality Cardinality
	Join        EntityType
	Payload     string
}

// The edge set is closed: both the traversal engine and the enrollment
// coordinator consult these declarations instead of re-deriving what a
// path segment means.
var edges = []Edge{
	{Name: "campaigns", From: EntityUser, To: EntityCampaign, Cardinality: Many, Join: EntityUserCampaign, Payload: "data"},
	{Name: "actions", From: EntityCampaign, To: EntityAction, Cardinality: Many},
	{Name: "userActions", From: EntityUser, To: EntityUserAction, Cardinality: Many},
	{Name: "action", From: EntityUserAction, To: EntityAction, Cardinality: One},
}

// Outbound looks up the edge named name leaving from.
func Outbound(from EntityType, name string) (Edge, bool) {
	for _, edge := range edges {
		if edge.From == from && edge.Name == name {
			return edge, true
		}
	}

	return Edge{}, false
}

// OutboundNames lists the edge names leaving from, in declaration order.
func OutboundNames(from EntityType) []string {
	var names []string

	for _, edge := range edges {
		if edge.From == from {
			names = append(names, edge.Name)
		}
	}

	return names
}
