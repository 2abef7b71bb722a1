package discord

import (
	"slices"

	"github.com/bwmarrin/discordgo"
)

// PermissionChecker validates that a Discord user carries the configured
// command role before running analysis commands.
type PermissionChecker struct {
	roleID string
}

// NewPermissionChecker creates a PermissionChecker for the given role ID.
func NewPermissionChecker(roleID string) *PermissionChecker {
	return &PermissionChecker{roleID: roleID}
}

// Allowed checks whether the interaction author has the configured role.
// If roleID is empty, all users are allowed (the default for small servers).
// Returns false if the interaction has no Member (e.g., DM channel
// interactions, which carry no role information).
func (p *PermissionChecker) Allowed(i *discordgo.InteractionCreate) bool {
	if p.roleID == "" {
		return true
	}
	if i.Member == nil {
		return false
	}
	return slices.Contains(i.Member.Roles, p.roleID)
}
