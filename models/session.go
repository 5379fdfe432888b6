package models

import "time"

type SubjectKind string

const (
	SubjectUser  SubjectKind = "user"
	SubjectAdmin SubjectKind = "admin"
)

// Session is one issued bearer token. Only the newest unrevoked row per
// (subject_kind, subject_id) is accepted, so issuing a token invalidates
// every earlier one and logout is a row update.
type Session struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	SubjectKind SubjectKind `gorm:"type:VARCHAR(10);not null;index:idx_sessions_subject" json:"subject_kind"`
	SubjectID   uint        `gorm:"not null;index:idx_sessions_subject" json:"subject_id"`
	Token       string      `gorm:"not null;index" json:"-"`
	ExpiresAt   time.Time   `gorm:"not null" json:"expires_at"`
	RevokedAt   *time.Time  `json:"revoked_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
