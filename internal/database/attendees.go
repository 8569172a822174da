package database

import (
	"context"

	"invitacion/internal/identity"
	"invitacion/internal/models"
)

// AttendeesChannel is notified with the device id of every new record.
const AttendeesChannel = "attendees_changed"

func (q *Queries) AttendeeExists(ctx context.Context, deviceID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM attendees WHERE device_id = $1)"
	err := q.db.QueryRow(ctx, query, deviceID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (q *Queries) CountAttendees(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, "SELECT count(*) FROM attendees").Scan(&count)
	return count, err
}

// insertAttendee creates the record unless one already exists for the device.
// It reports whether this call created it.
func (q *Queries) insertAttendee(ctx context.Context, a models.Attendee) (bool, error) {
	query := `
		INSERT INTO attendees (device_id, ip, user_agent)
		VALUES ($1, $2, $3)
		ON CONFLICT (device_id) DO NOTHING
	`
	ip := a.IP
	if ip == "" {
		ip = identity.UnknownAddress
	}
	res, err := q.db.Exec(ctx, query, a.DeviceID, ip, a.UserAgent)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (q *Queries) notifyAttendees(ctx context.Context, deviceID string) error {
	_, err := q.db.Exec(ctx, "SELECT pg_notify($1, $2)", AttendeesChannel, deviceID)
	return err
}

// ConfirmAttendee atomically creates the Attendance Record for a device if it
// does not exist yet. The timestamp is assigned by the database. Listeners
// are notified only when a record was created.
func (s *PostgresStore) ConfirmAttendee(ctx context.Context, a models.Attendee) (bool, error) {
	var committed bool

	err := s.ExecTx(ctx, func(q *Queries) error {
		created, err := q.insertAttendee(ctx, a)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		committed = true
		return q.notifyAttendees(ctx, a.DeviceID)
	})
	if err != nil {
		return false, err
	}

	return committed, nil
}

func (q *Queries) ListAttendees(ctx context.Context, limit int, offset int) ([]models.Attendee, error) {
	query := `
		SELECT device_id, ip, user_agent, confirmed_at
		FROM attendees
		ORDER BY confirmed_at ASC, device_id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := q.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []models.Attendee
	for rows.Next() {
		var a models.Attendee
		if err := rows.Scan(&a.DeviceID, &a.IP, &a.UserAgent, &a.ConfirmedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if attendees == nil {
		return []models.Attendee{}, nil
	}

	return attendees, nil
}
