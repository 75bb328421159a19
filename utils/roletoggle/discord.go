package roletoggle

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// DiscordProvider applies toggles through a discordgo session. Role lookups
// try the state cache first and fall back to the REST API.
type DiscordProvider struct {
	Session *discordgo.Session
}

func (p *DiscordProvider) RoleExists(guildID, roleID string) bool {
	if role, err := p.Session.State.Role(guildID, roleID); err == nil && role != nil {
		return true
	}
	roles, err := p.Session.GuildRoles(guildID)
	if err != nil {
		return false
	}
	for _, r := range roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}

func (p *DiscordProvider) AddRole(guildID, memberID, roleID string) error {
	return classify(p.Session.GuildMemberRoleAdd(guildID, memberID, roleID))
}

func (p *DiscordProvider) RemoveRole(guildID, memberID, roleID string) error {
	return classify(p.Session.GuildMemberRoleRemove(guildID, memberID, roleID))
}

// classify maps Discord permission rejections onto
// ErrInsufficientPermissions so the engine can report them structurally.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Response != nil && restErr.Response.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %v", ErrInsufficientPermissions, err)
		}
		if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions {
			return fmt.Errorf("%w: %v", ErrInsufficientPermissions, err)
		}
	}
	return err
}
