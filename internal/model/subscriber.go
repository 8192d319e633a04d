package model

import "time"

type Subscriber struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	Email            string     `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Source           string     `json:"source" gorm:"size:64"`
	UnsubscribeToken string     `json:"-" gorm:"size:36;not null;uniqueIndex"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (s *Subscriber) Active() bool { return s.UnsubscribedAt == nil }
