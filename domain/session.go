package domain

import "time"

// Session is the result of a successful login: the signed token and who it was issued to.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"usuario"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}
