package domain

import (
	"time"

	"github.com/google/uuid"
)

// PalStatus is the state of a travel-pal request.
type PalStatus string

const (
	PalPending  PalStatus = "pending"
	PalAccepted PalStatus = "accepted"
)

// Pal is a travel-pal connection between two users. The relationship is
// symmetric once accepted; RequesterID only records who asked.
type Pal struct {
	RequesterID uuid.UUID  `json:"requester_id"`
	AddresseeID uuid.UUID  `json:"addressee_id"`
	Status      PalStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
}
