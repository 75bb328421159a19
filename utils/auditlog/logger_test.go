package auditlog_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolekeeper/model"
	"rolekeeper/utils/auditlog"
	"rolekeeper/utils/guildstore"
)

type fakeSender struct {
	channels []string
	embeds   []*discordgo.MessageEmbed
	err      error
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channels = append(f.channels, channelID)
	f.embeds = append(f.embeds, embed)
	return nil, f.err
}

func newTestStore(t *testing.T) *guildstore.Store {
	t.Helper()
	s, err := guildstore.Load(filepath.Join(t.TempDir(), "guild_data.json"))
	require.NoError(t, err)
	return s
}

func TestEmitNoOpWhenChannelUnset(t *testing.T) {
	sender := &fakeSender{}
	logger := auditlog.New(sender, newTestStore(t))

	logger.Emit("g1", &discordgo.MessageEmbed{Description: "hello"})

	assert.Empty(t, sender.channels)
}

func TestEmitDeliversToConfiguredChannel(t *testing.T) {
	store := newTestStore(t)
	ch := int64(424242)
	require.NoError(t, store.SetSetting("g1", model.SettingLogChannel, &ch))

	sender := &fakeSender{}
	logger := auditlog.New(sender, store)
	logger.RoleGranted("g1", "555", "777")

	require.Len(t, sender.channels, 1)
	assert.Equal(t, "424242", sender.channels[0])
	assert.Contains(t, sender.embeds[0].Description, "<@555>")
	assert.Contains(t, sender.embeds[0].Description, "<@&777>")
}

func TestEmitSwallowsSendFailures(t *testing.T) {
	store := newTestStore(t)
	ch := int64(424242)
	require.NoError(t, store.SetSetting("g1", model.SettingLogChannel, &ch))

	sender := &fakeSender{err: errors.New("missing permissions")}
	logger := auditlog.New(sender, store)

	// Must not panic or surface the failure.
	logger.WarningIssued("g1", &model.WarningRecord{WarningID: "w1", UserID: 1, ModeratorID: 2, Reason: "spam"})
	assert.Len(t, sender.channels, 1)
}

func TestConfessionDeletedOmitsSubmitter(t *testing.T) {
	store := newTestStore(t)
	ch := int64(1)
	require.NoError(t, store.SetSetting("g1", model.SettingLogChannel, &ch))

	sender := &fakeSender{}
	logger := auditlog.New(sender, store)
	logger.ConfessionDeleted("g1", "90210", "abcd1234")

	require.Len(t, sender.embeds, 1)
	embed := sender.embeds[0]
	found := false
	for _, f := range embed.Fields {
		assert.NotContains(t, f.Value, "submitter")
		if f.Name == "Confession ID" {
			assert.Equal(t, "`abcd1234`", f.Value)
			found = true
		}
	}
	assert.True(t, found)
}
