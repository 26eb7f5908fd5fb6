package traversal

import "github.com/datadues/campaign-api/internal/models"

func recordID(record interface{}) uint {
	switch rec := record.(type) {
	case *models.User:
		return rec.ID
	case *models.Campaign:
		return rec.ID
	case *models.Action:
		return rec.ID
	case *models.UserCampaign:
		return rec.ID
	case *models.UserAction:
		return rec.ID
	default:
		return 0
	}
}

// matchesField evaluates an equality filter against one field of a record.
// Field names follow the wire spelling (campaignId, not CampaignID). Unknown
// fields match nothing, so a bad filter yields an empty collection instead
// of leaking unfiltered children.
func matchesField(record interface{}, field string, value interface{}) bool {
	actual, ok := fieldValue(record, field)

	if !ok {
		return false
	}

	return normalize(actual) == normalize(value)
}

func fieldValue(record interface{}, field string) (interface{}, bool) {
	switch rec := record.(type) {
	case *models.Campaign:
		switch field {
		case "id":
			return rec.ID, true
		case "slug":
			return rec.Slug, true
		}
	case *models.Action:
		switch field {
		case "id":
			return rec.ID, true
		case "campaignId":
			return rec.CampaignID, true
		case "type":
			return rec.Type, true
		}
	case *models.UserAction:
		switch field {
		case "id":
			return rec.ID, true
		case "userId":
			return rec.UserID, true
		case "actionId":
			return rec.ActionID, true
		case "campaignId":
			return rec.CampaignID, true
		case "completed":
			return rec.Completed, true
		}
	case *models.User:
		switch field {
		case "id":
			return rec.ID, true
		case "externalId":
			return rec.ExternalID, true
		}
	}

	return nil, false
}

// normalize widens numeric values so uint fields compare against whatever
// integer type the caller supplied.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case int:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	default:
		return value
	}
}
