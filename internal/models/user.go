package models

import "time"

const (
	RoleClient  = "client"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Entitlement
	CreatedAt time.Time `json:"created_at"`
}

// Entitlement is the user's current subscription state. Active is a stored
// flag set on purchase; whether the entitlement is usable right now must be
// decided by comparing ExpiresAt against the current instant.
type Entitlement struct {
	SubscriptionType *string    `json:"subscription_type"`
	ExpiresAt        *time.Time `json:"subscription_expires_at"`
	Active           bool       `json:"subscription_active"`
}

// Identity is the already-resolved caller: id plus role extracted from the
// token upstream. Core operations trust it verbatim.
type Identity struct {
	ID   int64
	Role string
}
