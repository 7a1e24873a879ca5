package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// GuestUpdate carries the fields of a guest edit; nil means "keep current".
type GuestUpdate struct {
	Name     *string `json:"name"`
	IDNumber *string `json:"idNumber"`
	Image    *string `json:"image"`
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Order("name ASC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) GetByID(id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Guest{}, fmt.Errorf("guest not found: %w", ErrNotFound)
		}
		return models.Guest{}, err
	}
	return guest, nil
}

func (s *GuestService) Create(guest models.Guest) (models.Guest, error) {
	guest.Name = strings.TrimSpace(guest.Name)
	guest.IDNumber = strings.TrimSpace(guest.IDNumber)
	if guest.Name == "" {
		return models.Guest{}, fmt.Errorf("guest name is required: %w", ErrInvalidInput)
	}
	if guest.IDNumber == "" {
		return models.Guest{}, fmt.Errorf("guest id number is required: %w", ErrInvalidInput)
	}
	if guest.Image == "" {
		guest.Image = utils.AvatarImage(guest.Name)
	}

	if err := s.DB.Create(&guest).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Guest{}, fmt.Errorf("guest with this id number already exists: %w", ErrDuplicate)
		}
		return models.Guest{}, err
	}
	return guest, nil
}

func (s *GuestService) Update(id uint, upd GuestUpdate) (models.Guest, error) {
	guest, err := s.GetByID(id)
	if err != nil {
		return models.Guest{}, err
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		guest.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.IDNumber != nil && strings.TrimSpace(*upd.IDNumber) != "" {
		guest.IDNumber = strings.TrimSpace(*upd.IDNumber)
	}
	if upd.Image != nil && *upd.Image != "" {
		guest.Image = *upd.Image
	}

	if err := s.DB.Save(&guest).Error; err != nil {
		if isDuplicateKey(err) {
			return models.Guest{}, fmt.Errorf("guest with this id number already exists: %w", ErrDuplicate)
		}
		return models.Guest{}, err
	}
	return guest, nil
}

func (s *GuestService) Delete(id uint) error {
	result := s.DB.Delete(&models.Guest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("guest not found: %w", ErrNotFound)
	}
	return nil
}
