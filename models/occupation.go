package models

import (
	"time"

	"gorm.io/gorm"
)

// Occupation statuses.
const (
	OccupationActive    = "Active"
	OccupationFinalized = "Finalized"
)

// Occupation is one guest's stay in a room, from check-in to check-out.
// Line items stay attached after checkout as the historical record of the stay.
type Occupation struct {
	gorm.Model

	RoomID  uint   `json:"roomId" gorm:"index"`
	GuestID *uint  `json:"guestId"`
	Guest   *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`

	CheckIn  time.Time  `json:"checkInDate"`
	CheckOut *time.Time `json:"checkOutDate"`
	Nights   int        `json:"nights"`
	Status   string     `json:"status" gorm:"type:varchar(20)"`

	// ActiveRoomID mirrors RoomID while the stay is active and is cleared on
	// checkout. The unique index enforces at most one active occupation per
	// room even when two check-ins race past the status check.
	ActiveRoomID *uint `json:"-" gorm:"uniqueIndex"`

	Products []Product     `json:"products" gorm:"foreignKey:OccupationID"`
	Extras   []ExtraCharge `json:"extras" gorm:"foreignKey:OccupationID"`
	Payments []Payment     `json:"payments" gorm:"foreignKey:OccupationID"`
}
