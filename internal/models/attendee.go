package models

import "time"

// Attendee is the remote Attendance Record, at most one per device.
type Attendee struct {
	DeviceID    string    `json:"device_id" example:"0b5e1c2a-8a3d-4f1e-9f2b-2d7c1a0e6b41"`
	IP          string    `json:"ip" example:"198.51.100.10"`
	UserAgent   string    `json:"user_agent" example:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) ..."`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
