package dto

import "time"

type ProfileRef struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       *string   `json:"email"`
	Bio         *string   `json:"bio"`
	DateOfBirth string    `json:"date_of_birth"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	IsVerified  bool      `json:"is_verified"`
	IsBanned    bool      `json:"is_banned"`
	Badge       string    `json:"badge"`
	CreatedAt   time.Time `json:"created_at"`
}

type UsersResponse struct {
	Items     []User `json:"items"`
	Empty     bool   `json:"empty"`
	Truncated bool   `json:"truncated"`
}

type BanRequest struct {
	Reason  string `json:"reason"`
	Notes   string `json:"notes"`
	Confirm bool   `json:"confirm"`
}

type DashboardResponse struct {
	TotalUsers          int64     `json:"total_users"`
	PendingPhotos       int64     `json:"pending_photos"`
	ActiveSubscriptions int64     `json:"active_subscriptions"`
	RecentActions       int64     `json:"recent_actions"`
	Failed              []string  `json:"failed"`
	GeneratedAt         time.Time `json:"generated_at"`
}
