package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
)

// ListenAttendeeCount reports the attendee count to onCount once on start and
// again after every notification on AttendeesChannel. It holds one pooled
// connection until ctx is done or the connection fails, and does not retry.
func (s *PostgresStore) ListenAttendeeCount(ctx context.Context, onCount func(int64)) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	defer conn.Release()

	channel := pgx.Identifier{AttendeesChannel}.Sanitize()
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", AttendeesChannel, err)
	}

	count, err := New(conn).CountAttendees(ctx)
	if err != nil {
		return fmt.Errorf("failed to count attendees: %w", err)
	}
	onCount(count)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("attendee subscription ended: %w", err)
		}
		log.Printf("New attendee confirmed: %s", notification.Payload)

		count, err := New(conn).CountAttendees(ctx)
		if err != nil {
			return fmt.Errorf("failed to count attendees: %w", err)
		}
		onCount(count)
	}
}
