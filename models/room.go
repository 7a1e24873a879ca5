package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room statuses. Maintenance is selectable on update only; no transition
// logic applies to it beyond the Occupied guards.
const (
	RoomAvailable   = "Available"
	RoomOccupied    = "Occupied"
	RoomMaintenance = "Maintenance"
)

type Room struct {
	gorm.Model

	Number   string          `json:"number" gorm:"column:number;uniqueIndex;type:varchar(20)"`
	Type     string          `json:"type" gorm:"type:varchar(50)"`
	Capacity int             `json:"capacity"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Status   string          `json:"status" gorm:"type:varchar(20);default:Available"`

	// Services is the set of service labels ("WiFi", "TV", ...), stored as a
	// JSON array so labels stay free-form.
	Services datatypes.JSON `json:"services"`

	Image string `json:"image" gorm:"column:image_url;type:varchar(500)"`
}

// ValidRoomStatus reports whether s is one of the modeled room statuses.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}
