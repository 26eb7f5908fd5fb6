package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/store"
	"github.com/datadues/campaign-api/internal/types"
)

// CampaignMiddleware scopes the request to a campaign. The slug comes from
// the X-Campaign-Slug header, then the first hostname label (campaigns are
// served on per-campaign subdomains), then the configured default. An
// unknown slug is a 404; requests that resolve no slug at all pass through
// without a campaign in context.
func CampaignMiddleware(entityStore *store.Store, defaultSlug string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		slug := ctx.GetHeader(types.CampaignSlugHeader)

		if slug == "" {
			slug = hostLabel(ctx.Request.Host)
		}

		if slug == "" {
			slug = defaultSlug
		}

		if slug == "" {
			ctx.Next()
			return
		}

		campaign, err := entityStore.FindCampaignBySlug(ctx.Request.Context(), slug)

		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			} else {
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve campaign"})
			}
			return
		}

		ctx.Set(types.ContextCampaignKey, campaign)
		ctx.Next()
	}
}

func hostLabel(host string) string {
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}

	// Bare hosts and IP literals name no campaign.
	if net.ParseIP(host) != nil {
		return ""
	}

	labels := strings.Split(host, ".")

	if len(labels) < 2 {
		return ""
	}

	return labels[0]
}
