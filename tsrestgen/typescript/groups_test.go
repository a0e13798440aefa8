package typescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMemberName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"detail", "Detail"},
		{"user:read", "UserRead"},
		{"user_read", "UserRead"},
		{"USER_LIST", "UserList"},
		{"a1-b2", "A1B2"},
		{"  spaced  out ", "SpacedOut"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupMemberName(tt.input))
		})
	}
}

func TestGroupCollector_Members(t *testing.T) {
	g := NewGroupCollector()
	g.Add("user:read", "ROLE_ADMIN", "main", "detail")
	g.Add("detail", "user_read", "list")

	assert.Equal(t, []string{"user:read", "ROLE_ADMIN", "main", "detail", "user_read", "list"}, g.Labels())
	assert.Equal(t, []EnumMember{
		{Key: "UserRead", Value: "user_read"},
		{Key: "Detail", Value: "detail"},
		{Key: "List", Value: "list"},
	}, g.Members())
}

func TestRegisterGroups(t *testing.T) {
	c := newTestCompiler(t, fixtureModel())

	require.NoError(t, c.RegisterInterface(userClass))
	require.NoError(t, c.RegisterGroups())

	// Methods are scanned before properties; route shapes come last.
	assert.Equal(t, []string{"main", "detail", "user:read", "ROLE_ADMIN", "filter"}, c.Groups())

	def, ok := c.Registry().Get(FieldGroupEnum)
	require.True(t, ok)
	assert.Equal(t, `export enum EFieldGroup { Detail = "detail", UserRead = "user:read", Filter = "filter" };`, def.Text)
}

func TestRegisterGroups_Empty(t *testing.T) {
	c := newTestCompiler(t, nil)

	require.NoError(t, c.RegisterGroups())
	def, _ := c.Registry().Get(FieldGroupEnum)
	assert.Equal(t, "export enum EFieldGroup {  };", def.Text)
}
