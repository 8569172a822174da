package attendance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		state      ButtonState
		event      Event
		wantState  ButtonState
		wantEffect Effect
	}{
		{"existing record confirms", ModeOnline, StateUnknown, EventRecordFound, StateConfirmed, EffectNone},
		{"missing record enables", ModeOnline, StateUnknown, EventRecordMissing, StateUnconfirmed, EffectNone},
		{"click before state known", ModeOnline, StateUnknown, EventClick, StateUnknown, EffectNone},
		{"online click writes remote", ModeOnline, StateUnconfirmed, EventClick, StateUnconfirmed, EffectRemoteWrite},
		{"offline click writes local", ModeOffline, StateUnconfirmed, EventClick, StateUnconfirmed, EffectLocalWrite},
		{"committed write notifies", ModeOnline, StateUnconfirmed, EventWriteCommitted, StateConfirmed, EffectNotify},
		{"lost race confirms silently", ModeOnline, StateUnconfirmed, EventWriteLost, StateConfirmed, EffectNone},
		{"failed write falls back", ModeOnline, StateUnconfirmed, EventWriteFailed, StateUnconfirmed, EffectLocalWrite},
		{"local save notifies offline", ModeOffline, StateUnconfirmed, EventLocalSaved, StateConfirmed, EffectNotifyOffline},
		{"fallback save notifies offline", ModeOnline, StateUnconfirmed, EventLocalSaved, StateConfirmed, EffectNotifyOffline},
		{"confirmed ignores click", ModeOnline, StateConfirmed, EventClick, StateConfirmed, EffectNone},
		{"confirmed ignores offline click", ModeOffline, StateConfirmed, EventClick, StateConfirmed, EffectNone},
		{"confirmed ignores commit", ModeOnline, StateConfirmed, EventWriteCommitted, StateConfirmed, EffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, effect := Next(tt.mode, tt.state, tt.event)
			require.Equal(t, tt.wantState, state)
			require.Equal(t, tt.wantEffect, effect)
		})
	}
}

func TestButtonStateString(t *testing.T) {
	require.Equal(t, "unknown", StateUnknown.String())
	require.Equal(t, "unconfirmed", StateUnconfirmed.String())
	require.Equal(t, "confirmed", StateConfirmed.String())
}
