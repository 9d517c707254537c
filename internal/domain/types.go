package domain

import "time"

type SessionID string
type UserID string
type MessageID string
type BookingID string

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Timestamp = time.Time
