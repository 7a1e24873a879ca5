package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk-backend/ledger"
	"frontdesk-backend/models"
)

// RoomAccount is the API view of a room together with its active stay.
// Totals are rounded to 2 decimals here and nowhere else; Balance is the
// display value, floored at zero.
type RoomAccount struct {
	models.Room

	Nights   int           `json:"nights"`
	CheckIn  *time.Time    `json:"checkInDate,omitempty"`
	Guest    *models.Guest `json:"guest,omitempty"`

	Products []models.Product     `json:"products"`
	Extras   []models.ExtraCharge `json:"extras"`
	Payments []models.Payment     `json:"payments"`

	StayTotal     decimal.Decimal `json:"stayTotal"`
	ProductsTotal decimal.Decimal `json:"productsTotal"`
	ExtrasTotal   decimal.Decimal `json:"extrasTotal"`
	PaymentsTotal decimal.Decimal `json:"paymentsTotal"`
	Balance       decimal.Decimal `json:"balance"`
}

// FrontDeskService drives the room lifecycle: Available -> Occupied ->
// Available, with every mutation gated by the ledger balance rules.
type FrontDeskService struct {
	store Store
	now   func() time.Time
}

func NewFrontDeskService(store Store) *FrontDeskService {
	return &FrontDeskService{store: store, now: time.Now}
}

// Account loads the room with its active occupation and computed totals.
func (s *FrontDeskService) Account(roomID uint) (RoomAccount, error) {
	room, err := s.store.GetRoom(roomID)
	if err != nil {
		return RoomAccount{}, err
	}
	occ, err := s.store.GetActiveOccupation(roomID)
	if err != nil {
		return RoomAccount{}, err
	}
	return buildAccount(room, occ), nil
}

// Occupy transitions an Available room to Occupied, opening a new active
// occupation with check-in = now and empty line items.
func (s *FrontDeskService) Occupy(roomID uint, nights int, guestID *uint) (RoomAccount, error) {
	if nights < 1 {
		return RoomAccount{}, fmt.Errorf("nights must be at least 1: %w", ErrInvalidInput)
	}

	err := s.store.Transact(func(st Store) error {
		room, err := st.GetRoom(roomID)
		if err != nil {
			return err
		}
		if room.Status != models.RoomAvailable {
			return fmt.Errorf("room is not available: %w", ErrInvalidState)
		}
		if guestID != nil {
			if _, err := st.GetGuest(*guestID); err != nil {
				return err
			}
		}

		occ := &models.Occupation{
			RoomID:       roomID,
			GuestID:      guestID,
			CheckIn:      s.now(),
			Nights:       nights,
			Status:       models.OccupationActive,
			ActiveRoomID: &roomID,
		}
		if err := st.CreateOccupation(occ); err != nil {
			return err
		}
		return st.SetRoomStatus(roomID, models.RoomOccupied)
	})
	if err != nil {
		return RoomAccount{}, err
	}
	return s.Account(roomID)
}

// CheckOut closes the active occupation and frees the room. It refuses to
// run while the signed balance is positive; line items stay attached to the
// finalized occupation as the historical record.
func (s *FrontDeskService) CheckOut(roomID uint) (RoomAccount, error) {
	err := s.store.Transact(func(st Store) error {
		room, occ, err := activeOccupation(st, roomID)
		if err != nil {
			return err
		}

		balance := ledger.Balance(*occ, room.Price)
		if balance.IsPositive() {
			return &BalanceNotClearedError{Balance: balance}
		}

		if err := st.FinalizeOccupation(occ.ID, s.now()); err != nil {
			return err
		}
		return st.SetRoomStatus(roomID, models.RoomAvailable)
	})
	if err != nil {
		return RoomAccount{}, err
	}
	return s.Account(roomID)
}

// AddProduct appends a consumed product to the active occupation.
func (s *FrontDeskService) AddProduct(roomID uint, name string, price decimal.Decimal) (RoomAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return RoomAccount{}, fmt.Errorf("product name is required: %w", ErrInvalidInput)
	}
	if !price.IsPositive() {
		return RoomAccount{}, fmt.Errorf("product price must be greater than zero: %w", ErrInvalidInput)
	}

	err := s.store.Transact(func(st Store) error {
		_, occ, err := activeOccupation(st, roomID)
		if err != nil {
			return err
		}
		return st.AppendProduct(occ.ID, models.Product{Name: name, Price: price})
	})
	if err != nil {
		return RoomAccount{}, err
	}
	return s.Account(roomID)
}

// AddExtra appends an extra charge to the active occupation.
func (s *FrontDeskService) AddExtra(roomID uint, description string, amount decimal.Decimal) (RoomAccount, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return RoomAccount{}, fmt.Errorf("extra charge description is required: %w", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return RoomAccount{}, fmt.Errorf("extra charge amount must be greater than zero: %w", ErrInvalidInput)
	}

	err := s.store.Transact(func(st Store) error {
		_, occ, err := activeOccupation(st, roomID)
		if err != nil {
			return err
		}
		return st.AppendExtra(occ.ID, models.ExtraCharge{Description: description, Charge: amount})
	})
	if err != nil {
		return RoomAccount{}, err
	}
	return s.Account(roomID)
}

// AddPayment records a payment against the active occupation. Zero and
// negative amounts are rejected, as is any amount above the signed balance;
// the rejection carries the maximum accepted amount.
func (s *FrontDeskService) AddPayment(roomID uint, amount decimal.Decimal) (RoomAccount, error) {
	if !amount.IsPositive() {
		return RoomAccount{}, fmt.Errorf("payment amount must be greater than zero: %w", ErrInvalidInput)
	}

	err := s.store.Transact(func(st Store) error {
		room, occ, err := activeOccupation(st, roomID)
		if err != nil {
			return err
		}

		balance := ledger.Balance(*occ, room.Price)
		if amount.GreaterThan(balance) {
			return &PaymentTooLargeError{MaxAmount: balance}
		}

		return st.AppendPayment(occ.ID, models.Payment{Paid: amount, PaidAt: s.now()})
	})
	if err != nil {
		return RoomAccount{}, err
	}
	return s.Account(roomID)
}

// RemoveLineItem removes the item at the zero-based position from the
// active occupation's products, extras, or payments.
func (s *FrontDeskService) RemoveLineItem(roomID uint, kind models.LineItemKind, index int) (RoomAccount, error) {
	err := s.store.Transact(func(st Store) error {
		_, occ, err := activeOccupation(st, roomID)
		if err != nil {
			return err
		}
		return st.RemoveLineItem(occ.ID, kind, index)
	})
	if err != nil {
		return RoomAccount{}, err
	}
	return s.Account(roomID)
}

// DeleteRoom removes a room that is not currently occupied. History
// (finalized occupations) is retained.
func (s *FrontDeskService) DeleteRoom(roomID uint) error {
	return s.store.Transact(func(st Store) error {
		room, err := st.GetRoom(roomID)
		if err != nil {
			return err
		}
		if room.Status == models.RoomOccupied {
			return fmt.Errorf("cannot delete an occupied room: %w", ErrInvalidState)
		}
		return st.DeleteRoom(roomID)
	})
}

// activeOccupation loads the room and its active occupation, failing with
// ErrInvalidState when the room is not occupied.
func activeOccupation(st Store, roomID uint) (models.Room, *models.Occupation, error) {
	room, err := st.GetRoom(roomID)
	if err != nil {
		return models.Room{}, nil, err
	}
	occ, err := st.GetActiveOccupation(roomID)
	if err != nil {
		return models.Room{}, nil, err
	}
	if room.Status != models.RoomOccupied || occ == nil {
		return models.Room{}, nil, fmt.Errorf("room is not occupied: %w", ErrInvalidState)
	}
	return room, occ, nil
}

func buildAccount(room models.Room, occ *models.Occupation) RoomAccount {
	account := RoomAccount{
		Room:     room,
		Products: []models.Product{},
		Extras:   []models.ExtraCharge{},
		Payments: []models.Payment{},
	}

	if occ != nil {
		account.Nights = occ.Nights
		checkIn := occ.CheckIn
		account.CheckIn = &checkIn
		account.Guest = occ.Guest
		if occ.Products != nil {
			account.Products = occ.Products
		}
		if occ.Extras != nil {
			account.Extras = occ.Extras
		}
		if occ.Payments != nil {
			account.Payments = occ.Payments
		}
	}

	account.StayTotal = ledger.StayTotal(account.Nights, room.Price).Round(2)
	account.ProductsTotal = ledger.LineItemsTotal(account.Products).Round(2)
	account.ExtrasTotal = ledger.LineItemsTotal(account.Extras).Round(2)
	account.PaymentsTotal = ledger.LineItemsTotal(account.Payments).Round(2)

	if occ != nil {
		account.Balance = ledger.DisplayBalance(ledger.Balance(*occ, room.Price))
	} else {
		account.Balance = decimal.Zero.Round(2)
	}
	return account
}
