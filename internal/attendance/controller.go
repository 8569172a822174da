package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"invitacion/internal/identity"
	"invitacion/internal/models"
	"invitacion/internal/storage"
)

const (
	CountKey        = "globalConfirmCount"
	confirmedPrefix = "confirmed_"
	confirmedValue  = "true"

	MsgConfirmed        = "¡Gracias por confirmar tu asistencia!"
	MsgConfirmedOffline = "¡Gracias por confirmar tu asistencia! (modo offline)"

	ButtonLabel          = "Confirmar asistencia"
	ButtonLabelConfirmed = "¡Asistencia confirmada!"
)

var ErrNoIdentity = errors.New("request has no identity")

func CountLabel(n int64) string {
	return fmt.Sprintf("Asistencias confirmadas: %d", n)
}

func ConfirmedKey(id identity.Identity) string {
	return confirmedPrefix + string(id)
}

type Remote interface {
	AttendeeExists(ctx context.Context, deviceID string) (bool, error)
	ConfirmAttendee(ctx context.Context, attendee models.Attendee) (bool, error)
	CountAttendees(ctx context.Context) (int64, error)
}

type Local interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Increment(key string, delta int64) (int64, error)
}

type Publisher interface {
	PublishCount(count int64)
}

type Status struct {
	Mode        Mode   `json:"mode" example:"online"`
	Count       int64  `json:"count" example:"2"`
	CountLabel  string `json:"count_label" example:"Asistencias confirmadas: 2"`
	Confirmed   bool   `json:"confirmed"`
	ButtonLabel string `json:"button_label" example:"Confirmar asistencia"`
}

type Confirmation struct {
	Status
	Notification string `json:"notification,omitempty" example:"¡Gracias por confirmar tu asistencia!"`
	Offline      bool   `json:"offline"`
}

type Controller struct {
	mode      Mode
	remote    Remote
	local     Local
	publisher Publisher

	latest atomic.Int64
	locks  keyedMutex
}

// NewOnline builds a controller backed by the remote store. Count updates
// arrive through OnCount and are forwarded to publisher, which may be nil.
func NewOnline(remote Remote, local Local, publisher Publisher) *Controller {
	return &Controller{
		mode:      ModeOnline,
		remote:    remote,
		local:     local,
		publisher: publisher,
	}
}

func NewOffline(local Local) *Controller {
	return &Controller{
		mode:  ModeOffline,
		local: local,
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// OnCount is the subscription callback for the remote record count.
func (c *Controller) OnCount(n int64) {
	if c.mode != ModeOnline {
		return
	}

	c.latest.Store(n)
	attendeesGauge.Set(float64(n))

	if err := c.local.Set(CountKey, strconv.FormatInt(n, 10)); err != nil {
		log.Printf("WARN: failed to cache attendee count: %v", err)
	}

	if c.publisher != nil {
		c.publisher.PublishCount(n)
	}
}

// CurrentCount is the count shown on the page: the latest subscription value
// online, the cached local total offline.
func (c *Controller) CurrentCount() (int64, error) {
	if c.mode == ModeOnline {
		return c.latest.Load(), nil
	}
	return c.cachedCount()
}

func (c *Controller) Status(ctx context.Context, id identity.Identity) (Status, error) {
	if id == "" {
		return Status{}, ErrNoIdentity
	}

	state, err := c.load(ctx, id)
	if err != nil {
		return Status{}, err
	}

	count, err := c.CurrentCount()
	if err != nil {
		return Status{}, err
	}

	return c.status(state, count), nil
}

// Confirm handles one activation of the confirm control for id. Concurrent
// calls for the same identity are serialized; only the first one writes.
func (c *Controller) Confirm(ctx context.Context, id identity.Identity, meta identity.ClientMeta) (Confirmation, error) {
	if id == "" {
		return Confirmation{}, ErrNoIdentity
	}

	unlock := c.locks.Lock(string(id))
	defer unlock()

	state, err := c.load(ctx, id)
	if err != nil {
		return Confirmation{}, err
	}

	if state == StateConfirmed {
		confirmationsTotal.WithLabelValues(string(c.mode), "already_confirmed").Inc()
	}

	state, effect := Next(c.mode, state, EventClick)

	var (
		offline    bool
		committed  bool
		localTotal int64
	)
	for effect == EffectRemoteWrite || effect == EffectLocalWrite {
		var ev Event
		if effect == EffectRemoteWrite {
			ev = c.writeRemote(ctx, id, meta)
			committed = ev == EventWriteCommitted
		} else {
			localTotal, err = c.writeLocal(id)
			if err != nil {
				return Confirmation{}, err
			}
			offline = true
			ev = EventLocalSaved
		}
		state, effect = Next(c.mode, state, ev)
	}

	var notification string
	switch effect {
	case EffectNotify:
		notification = MsgConfirmed
	case EffectNotifyOffline:
		notification = MsgConfirmedOffline
	}

	count := localTotal
	if !offline {
		if count, err = c.CurrentCount(); err != nil {
			return Confirmation{}, err
		}
		if committed {
			count = c.refreshCount(ctx, count)
		}
	}

	return Confirmation{
		Status:       c.status(state, count),
		Notification: notification,
		Offline:      offline,
	}, nil
}

// load derives the initial button state. Online it comes from the remote
// record alone; the local flag only counts in offline mode.
func (c *Controller) load(ctx context.Context, id identity.Identity) (ButtonState, error) {
	ev := EventRecordMissing
	if c.mode == ModeOnline {
		exists, err := c.remote.AttendeeExists(ctx, string(id))
		if err != nil {
			log.Printf("WARN: attendee existence check failed for %s: %v", id, err)
		} else if exists {
			ev = EventRecordFound
		}
	} else {
		flagged, err := c.flagged(id)
		if err != nil {
			return StateUnknown, err
		}
		if flagged {
			ev = EventRecordFound
		}
	}

	state, _ := Next(c.mode, StateUnknown, ev)
	return state, nil
}

func (c *Controller) writeRemote(ctx context.Context, id identity.Identity, meta identity.ClientMeta) Event {
	committed, err := c.remote.ConfirmAttendee(ctx, models.Attendee{
		DeviceID:  string(id),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	})
	switch {
	case err != nil:
		log.Printf("ERROR: remote confirmation failed for %s, switching offline: %v", id, err)
		confirmationsTotal.WithLabelValues(string(c.mode), "write_failed").Inc()
		return EventWriteFailed
	case committed:
		confirmationsTotal.WithLabelValues(string(c.mode), "committed").Inc()
		return EventWriteCommitted
	default:
		confirmationsTotal.WithLabelValues(string(c.mode), "lost_race").Inc()
		return EventWriteLost
	}
}

// refreshCount includes a just-committed record that the subscription has not
// reported yet. Records are never removed, so the larger value wins.
func (c *Controller) refreshCount(ctx context.Context, latest int64) int64 {
	n, err := c.remote.CountAttendees(ctx)
	if err != nil {
		log.Printf("WARN: failed to refresh attendee count: %v", err)
		return latest
	}
	return max(latest, n)
}

func (c *Controller) writeLocal(id identity.Identity) (int64, error) {
	if err := c.local.Set(ConfirmedKey(id), confirmedValue); err != nil {
		return 0, fmt.Errorf("failed to persist confirmation flag: %w", err)
	}

	total, err := c.local.Increment(CountKey, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to persist attendee count: %w", err)
	}

	confirmationsTotal.WithLabelValues(string(c.mode), "local").Inc()
	return total, nil
}

func (c *Controller) flagged(id identity.Identity) (bool, error) {
	v, ok, err := c.local.Get(ConfirmedKey(id))
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation flag: %w", err)
	}
	return ok && v == confirmedValue, nil
}

func (c *Controller) cachedCount() (int64, error) {
	v, _, err := c.local.Get(CountKey)
	if err != nil {
		return 0, fmt.Errorf("failed to read cached count: %w", err)
	}
	return storage.ParseCount(v), nil
}

func (c *Controller) status(state ButtonState, count int64) Status {
	s := Status{
		Mode:        c.mode,
		Count:       count,
		CountLabel:  CountLabel(count),
		Confirmed:   state == StateConfirmed,
		ButtonLabel: ButtonLabel,
	}
	if s.Confirmed {
		s.ButtonLabel = ButtonLabelConfirmed
	}
	return s
}

// keyedMutex hands out one mutex per key and drops it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
