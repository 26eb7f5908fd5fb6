package types

const (
	// ContextUserKey holds the AuthenticatedUser for the request.
	ContextUserKey = "user"
	// ContextCampaignKey holds the campaign the request is scoped to.
	ContextCampaignKey = "campaign"

	// CampaignSlugHeader overrides the campaign a request is scoped to;
	// without it the first hostname label is used.
	CampaignSlugHeader = "X-Campaign-Slug"

	// ActionTypeDataDues marks the action collecting data-dues submissions.
	ActionTypeDataDues = "data_dues"
)
