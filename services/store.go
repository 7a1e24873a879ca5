package services

import (
	"errors"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"frontdesk-backend/models"
)

// Store is the persistence contract the front-desk state machine runs
// against. The production implementation is GormStore; tests use an
// in-memory fake.
type Store interface {
	// Transact runs fn against a store whose writes commit or roll back
	// together.
	Transact(fn func(Store) error) error

	GetRoom(id uint) (models.Room, error)
	GetGuest(id uint) (models.Guest, error)

	// GetActiveOccupation returns the room's active occupation with its
	// line items loaded in insertion order, or nil when the room is free.
	GetActiveOccupation(roomID uint) (*models.Occupation, error)

	CreateOccupation(occ *models.Occupation) error
	FinalizeOccupation(occupationID uint, checkOut time.Time) error

	AppendProduct(occupationID uint, item models.Product) error
	AppendExtra(occupationID uint, item models.ExtraCharge) error
	AppendPayment(occupationID uint, item models.Payment) error

	// RemoveLineItem removes the item at the zero-based position within the
	// occupation's items of the given kind.
	RemoveLineItem(occupationID uint, kind models.LineItemKind, index int) error

	SetRoomStatus(roomID uint, status string) error
	DeleteRoom(id uint) error
}

// GormStore backs Store with the MySQL database.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Transact(fn func(Store) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

func (s *GormStore) GetRoom(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, fmt.Errorf("room not found: %w", ErrNotFound)
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *GormStore) GetGuest(id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Guest{}, fmt.Errorf("guest not found: %w", ErrNotFound)
		}
		return models.Guest{}, err
	}
	return guest, nil
}

func (s *GormStore) GetActiveOccupation(roomID uint) (*models.Occupation, error) {
	var occ models.Occupation
	err := s.DB.
		Preload("Guest").
		Preload("Products", byInsertionOrder).
		Preload("Extras", byInsertionOrder).
		Preload("Payments", byInsertionOrder).
		Where("active_room_id = ?", roomID).
		First(&occ).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &occ, nil
}

func byInsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (s *GormStore) CreateOccupation(occ *models.Occupation) error {
	if err := s.DB.Create(occ).Error; err != nil {
		// The unique index on active_room_id fires when two check-ins race.
		if isDuplicateKey(err) {
			return fmt.Errorf("room already has an active occupation: %w", ErrInvalidState)
		}
		return err
	}
	return nil
}

func (s *GormStore) FinalizeOccupation(occupationID uint, checkOut time.Time) error {
	return s.DB.Model(&models.Occupation{}).
		Where("id = ?", occupationID).
		Updates(map[string]interface{}{
			"status":         models.OccupationFinalized,
			"check_out":      checkOut,
			"active_room_id": nil,
		}).Error
}

func (s *GormStore) AppendProduct(occupationID uint, item models.Product) error {
	item.OccupationID = occupationID
	return s.DB.Create(&item).Error
}

func (s *GormStore) AppendExtra(occupationID uint, item models.ExtraCharge) error {
	item.OccupationID = occupationID
	return s.DB.Create(&item).Error
}

func (s *GormStore) AppendPayment(occupationID uint, item models.Payment) error {
	item.OccupationID = occupationID
	return s.DB.Create(&item).Error
}

func (s *GormStore) RemoveLineItem(occupationID uint, kind models.LineItemKind, index int) error {
	if index < 0 {
		return fmt.Errorf("line item index out of range: %w", ErrInvalidInput)
	}

	var model interface{}
	switch kind {
	case models.KindProduct:
		model = &models.Product{}
	case models.KindExtra:
		model = &models.ExtraCharge{}
	case models.KindPayment:
		model = &models.Payment{}
	default:
		return fmt.Errorf("unknown line item kind %q: %w", kind, ErrInvalidInput)
	}

	// Resolve the zero-based position to a row id within the occupation.
	var ids []uint
	err := s.DB.Model(model).
		Where("occupation_id = ?", occupationID).
		Order("id ASC").
		Offset(index).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("line item index out of range: %w", ErrNotFound)
	}
	return s.DB.Delete(model, ids[0]).Error
}

func (s *GormStore) SetRoomStatus(roomID uint, status string) error {
	return s.DB.Model(&models.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{"status": status}).Error
}

func (s *GormStore) DeleteRoom(id uint) error {
	return s.DB.Delete(&models.Room{}, id).Error
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry error.
func isDuplicateKey(err error) bool {
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
