package model

import "time"

type Profile struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       *string   `json:"email"`
	Bio         *string   `json:"bio"`
	DateOfBirth string    `json:"date_of_birth"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	IsVerified  bool      `json:"is_verified"`
	IsBanned    bool      `json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileRef is the read-only slice of a profile joined onto request rows.
type ProfileRef struct {
	DisplayName string  `json:"display_name"`
	Email       *string `json:"email,omitempty"`
}

func (p *ProfileRef) Name() string {
	if p == nil {
		return ""
	}
	return p.DisplayName
}

func (p *ProfileRef) EmailOrEmpty() string {
	if p == nil || p.Email == nil {
		return ""
	}
	return *p.Email
}
