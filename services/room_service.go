package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

// RoomService owns room CRUD. Occupancy transitions and deletion guards
// live in FrontDeskService.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomUpdate carries the fields of a room edit; nil means "keep current".
type RoomUpdate struct {
	Number   *string          `json:"number"`
	Type     *string          `json:"type"`
	Capacity *int             `json:"capacity"`
	Price    *decimal.Decimal `json:"price"`
	Status   *string          `json:"status"`
	Services *[]string        `json:"services"`
	Image    *string          `json:"image"`
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("number ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) Create(room models.Room) (models.Room, error) {
	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		return models.Room{}, fmt.Errorf("room number is required: %w", ErrInvalidInput)
	}
	if room.Capacity <= 0 {
		return models.Room{}, fmt.Errorf("capacity must be a positive integer: %w", ErrInvalidInput)
	}
	if room.Price.IsNegative() {
		return models.Room{}, fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !models.ValidRoomStatus(room.Status) {
		return models.Room{}, fmt.Errorf("unknown room status %q: %w", room.Status, ErrInvalidInput)
	}
	if room.Status == models.RoomOccupied {
		return models.Room{}, fmt.Errorf("a new room cannot start occupied: %w", ErrInvalidState)
	}
	if room.Image == "" {
		room.Image = utils.RoomPlaceholderImage(room.Number)
	}
	if len(room.Services) == 0 {
		room.Services = datatypes.JSON([]byte("[]"))
	}

	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, fmt.Errorf("room number already exists: %w", ErrDuplicate)
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Update(id uint, upd RoomUpdate) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, fmt.Errorf("room not found: %w", ErrNotFound)
		}
		return models.Room{}, err
	}

	if upd.Number != nil && strings.TrimSpace(*upd.Number) != "" {
		room.Number = strings.TrimSpace(*upd.Number)
	}
	if upd.Type != nil {
		room.Type = *upd.Type
	}
	if upd.Capacity != nil {
		if *upd.Capacity <= 0 {
			return models.Room{}, fmt.Errorf("capacity must be a positive integer: %w", ErrInvalidInput)
		}
		room.Capacity = *upd.Capacity
	}
	if upd.Price != nil {
		if upd.Price.IsNegative() {
			return models.Room{}, fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
		}
		room.Price = *upd.Price
	}
	if upd.Status != nil && *upd.Status != room.Status {
		// Occupancy is owned by the front-desk state machine; edits may only
		// toggle between Available and Maintenance.
		if !models.ValidRoomStatus(*upd.Status) {
			return models.Room{}, fmt.Errorf("unknown room status %q: %w", *upd.Status, ErrInvalidInput)
		}
		if room.Status == models.RoomOccupied || *upd.Status == models.RoomOccupied {
			return models.Room{}, fmt.Errorf("occupancy changes go through check-in and check-out: %w", ErrInvalidState)
		}
		room.Status = *upd.Status
	}
	if upd.Services != nil {
		raw, err := json.Marshal(*upd.Services)
		if err != nil {
			return models.Room{}, fmt.Errorf("invalid services list: %w", ErrInvalidInput)
		}
		room.Services = datatypes.JSON(raw)
	}
	if upd.Image != nil && *upd.Image != "" {
		room.Image = *upd.Image
	}

	if err := s.DB.Save(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Room{}, fmt.Errorf("room number already exists: %w", ErrDuplicate)
		}
		return models.Room{}, err
	}
	return room, nil
}
