package attendance

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type ButtonState int

const (
	StateUnknown ButtonState = iota
	StateUnconfirmed
	StateConfirmed
)

func (s ButtonState) String() string {
	switch s {
	case StateUnconfirmed:
		return "unconfirmed"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

type Event int

const (
	EventRecordFound Event = iota
	EventRecordMissing
	EventClick
	EventWriteCommitted
	EventWriteLost
	EventWriteFailed
	EventLocalSaved
)

// Effect is the side effect the controller must run after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectRemoteWrite
	EffectLocalWrite
	EffectNotify
	EffectNotifyOffline
)

// Next returns the state after ev and the effect to run. Once confirmed the
// button ignores every event, which makes confirmation idempotent.
func Next(mode Mode, s ButtonState, ev Event) (ButtonState, Effect) {
	switch s {
	case StateConfirmed:
		return StateConfirmed, EffectNone

	case StateUnknown:
		switch ev {
		case EventRecordFound:
			return StateConfirmed, EffectNone
		case EventRecordMissing:
			return StateUnconfirmed, EffectNone
		}
		return StateUnknown, EffectNone

	case StateUnconfirmed:
		switch ev {
		case EventClick:
			if mode == ModeOnline {
				return StateUnconfirmed, EffectRemoteWrite
			}
			return StateUnconfirmed, EffectLocalWrite
		case EventWriteCommitted:
			return StateConfirmed, EffectNotify
		case EventWriteLost:
			return StateConfirmed, EffectNone
		case EventWriteFailed:
			return StateUnconfirmed, EffectLocalWrite
		case EventLocalSaved:
			return StateConfirmed, EffectNotifyOffline
		case EventRecordFound:
			return StateConfirmed, EffectNone
		}
	}

	return s, EffectNone
}
