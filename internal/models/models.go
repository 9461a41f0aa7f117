package models

import "time"

// DefaultModel labels which provider produced a generated image.
const DefaultModel = "clipdrop"

type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	CreditBalance   int       `json:"creditBalance"`
	GenerationCount int       `json:"generationCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Image struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Prompt       string    `json:"prompt"`
	ContentType  string    `json:"contentType"`
	Payload      []byte    `json:"-"`
	PublicURL    string    `json:"publicUrl,omitempty"`
	IsFavorite   bool      `json:"isFavorite"`
	GenerationMS int64     `json:"generationMs"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Transaction struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	PlanID          string     `json:"planId"`
	Amount          int        `json:"amount"`
	Credits         int        `json:"credits"`
	ProviderOrderID string     `json:"providerOrderId"`
	Settled         bool       `json:"settled"`
	CreatedAt       time.Time  `json:"createdAt"`
	SettledAt       *time.Time `json:"settledAt,omitempty"`
}

type Plan struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Amount    int       `json:"amount"`
	Credits   int       `json:"credits"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
