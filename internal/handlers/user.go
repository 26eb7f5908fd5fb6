package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/types"
	"github.com/datadues/campaign-api/internal/utils"
)

// Me returns the authenticated caller.
func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.store.FindUser(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		h.log.Error("failed to fetch current user", "error", err, "user_id", currentUser.ID)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			Name:       user.Name,
			AvatarURL:  user.AvatarURL,
			ExternalID: user.ExternalID,
		},
	})
}
