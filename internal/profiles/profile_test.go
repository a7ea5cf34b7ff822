package profiles

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Profile
		wantErr bool
	}{
		{"ok", Profile{Username: "Ana"}, false},
		{"blank username", Profile{Username: "  "}, true},
		{"negative points", Profile{Username: "Ana", Points: -1}, true},
		{"negative orders", Profile{Username: "Ana", TotalOrders: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidProfile)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProfile_HasCurrentOrder(t *testing.T) {
	require.False(t, Profile{}.HasCurrentOrder())
	require.False(t, Profile{CurrentOrder: NoCurrentOrder}.HasCurrentOrder())
	require.True(t, Profile{CurrentOrder: "Торта Пчела"}.HasCurrentOrder())
}

func TestNewID_Format(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	id := newID(now)

	require.True(t, strings.HasPrefix(id, "profile_1700000000123_"), id)
	require.Len(t, strings.TrimPrefix(id, "profile_1700000000123_"), 9)
	require.NotEqual(t, id, newID(now))
}
