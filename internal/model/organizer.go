package model

import "time"

// Organizer is an account that owns protest listings.
type Organizer struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Bio          *string   `json:"bio" db:"bio"`
	Followers    int       `json:"followers" db:"followers"`
	SocialClicks int       `json:"social_clicks" db:"social_clicks"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PublicOrganizer is the profile shape returned to any caller.
type PublicOrganizer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       *string   `json:"bio"`
	Followers int       `json:"followers"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Organizer) Public() *PublicOrganizer {
	return &PublicOrganizer{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Bio:       o.Bio,
		Followers: o.Followers,
		CreatedAt: o.CreatedAt,
	}
}

// RegisterRequest 註冊請求
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Bio      *string `json:"bio"`
}

// LoginRequest 登入請求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token       string           `json:"token"`
	OrganizerID int64            `json:"organizerId"`
	Organizer   *PublicOrganizer `json:"organizer"`
}

type FollowRequest struct {
	Following *bool `json:"following" binding:"required"`
}

// Analytics summarizes engagement across an organizer's listings.
type Analytics struct {
	Followers    int   `json:"followers"`
	TotalLikes   int64 `json:"total_likes"`
	SocialClicks int   `json:"social_clicks"`
	ProtestCount int   `json:"protest_count"`
}
