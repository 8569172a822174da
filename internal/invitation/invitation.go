// Package invitation builds the event's calendar export and share links.
package invitation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"invitacion/internal/config"

	ics "github.com/arran4/golang-ical"
)

// FloatingLayout is the local, zone-less date-time form used for DTSTART,
// DTEND and the Google Calendar dates parameter.
const FloatingLayout = "20060102T150405"

const (
	googleCalendarBase = "https://www.google.com/calendar/render"
	whatsAppBase       = "https://wa.me/"
)

var ErrInvalidEventTime = errors.New("invalid event time")

type Invitation struct {
	cfg config.InvitationConfig
	now func() time.Time
}

func New(cfg config.InvitationConfig) *Invitation {
	return &Invitation{cfg: cfg, now: time.Now}
}

func (i *Invitation) Title() string {
	return i.cfg.Title
}

func (i *Invitation) Location() string {
	return i.cfg.Location
}

func (i *Invitation) MusicURL() string {
	return i.cfg.MusicURL
}

func (i *Invitation) Filename() string {
	return i.cfg.ICSFilename
}

func (i *Invitation) times() (time.Time, time.Time, error) {
	start, err := time.Parse(FloatingLayout, i.cfg.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", ErrInvalidEventTime, i.cfg.Start)
	}
	end, err := time.Parse(FloatingLayout, i.cfg.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", ErrInvalidEventTime, i.cfg.End)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end must be after start", ErrInvalidEventTime)
	}
	return start, end, nil
}

// GoogleCalendarURL returns the "add to Google Calendar" template link.
func (i *Invitation) GoogleCalendarURL() (string, error) {
	start, end, err := i.times()
	if err != nil {
		return "", err
	}

	// url.Values would encode the slash in dates and sort action after details.
	u := googleCalendarBase + "?action=TEMPLATE" +
		"&text=" + escape(i.cfg.Title) +
		"&dates=" + start.Format(FloatingLayout) + "/" + end.Format(FloatingLayout) +
		"&location=" + escape(i.cfg.Location) +
		"&details=" + escape(i.cfg.Description)
	return u, nil
}

// ICS renders the event as an iCalendar file with one reminder alarm.
func (i *Invitation) ICS() ([]byte, error) {
	start, end, err := i.times()
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetCalscale("GREGORIAN")

	event := cal.AddEvent(fmt.Sprintf("%s@invitacion", start.Format(FloatingLayout)))
	event.SetDtStampTime(i.now())
	event.SetSummary(i.cfg.Title)
	if i.cfg.Description != "" {
		event.SetDescription(i.cfg.Description)
	}
	event.SetLocation(i.cfg.Location)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(FloatingLayout))
	event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(FloatingLayout))
	if i.cfg.RRule != "" {
		event.AddRrule(i.cfg.RRule)
	}

	if i.cfg.AlarmTrigger != "" {
		alarm := event.AddAlarm()
		alarm.SetTrigger(i.cfg.AlarmTrigger)
		alarm.SetProperty(ics.ComponentPropertyDescription, i.cfg.AlarmDescription)
		alarm.SetAction(ics.ActionDisplay)
	}

	return []byte(cal.Serialize()), nil
}

func (i *Invitation) MapsURL() string {
	return i.cfg.MapsURL
}

func (i *Invitation) WhatsAppURL() string {
	return whatsAppBase + "?text=" + escape(i.cfg.ShareMessage)
}

// uriComponent turns url.QueryEscape output into encodeURIComponent form:
// spaces as %20 and !'()* left as they are.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escape(s string) string {
	return uriComponent.Replace(url.QueryEscape(s))
}
