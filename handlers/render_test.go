package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolekeeper/utils/roletoggle"
)

func TestBuildConfessionEmbedAnonymity(t *testing.T) {
	const submitterID = "123456789012345678"
	embed := BuildConfessionEmbed("abcd1234-ef56-7890-abcd-ef1234567890", "I broke the build")

	assert.Equal(t, "I broke the build", embed.Description)
	assert.Equal(t, "Confession ID: abcd1234", embed.Footer.Text)

	// Nothing in the rendered output may reference the submitter. The
	// builder never even receives the identity, but keep the rendered form
	// honest too.
	raw, err := json.Marshal(embed)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), submitterID)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abcd1234", shortID("abcd1234-ef56-7890"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestBuildToggleSummary(t *testing.T) {
	assert.Equal(t, "No role changes made.", buildToggleSummary(roletoggle.Result{}))

	res := roletoggle.Result{
		Added:   []string{"1"},
		Removed: []string{"2", "3"},
		Failed: []roletoggle.Failure{
			{RoleID: "4", Reason: roletoggle.ReasonRoleNoLongerExists},
			{RoleID: "5", Reason: roletoggle.ReasonInsufficientPermissions},
		},
	}
	summary := buildToggleSummary(res)
	assert.Contains(t, summary, "Added: <@&1>")
	assert.Contains(t, summary, "Removed: <@&2>, <@&3>")
	assert.Contains(t, summary, "`4`")
	assert.Contains(t, summary, "<@&5>")
}
