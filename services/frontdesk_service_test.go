package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// =============================================================================
// IN-MEMORY STORE FAKE
// =============================================================================

type memStore struct {
	rooms       map[uint]models.Room
	guests      map[uint]models.Guest
	occupations map[uint]*models.Occupation
	nextOccID   uint
	nextItemID  uint
}

func newMemStore() *memStore {
	return &memStore{
		rooms:       map[uint]models.Room{},
		guests:      map[uint]models.Guest{},
		occupations: map[uint]*models.Occupation{},
		nextOccID:   1,
		nextItemID:  1,
	}
}

func (m *memStore) Transact(fn func(services.Store) error) error { return fn(m) }

func (m *memStore) GetRoom(id uint) (models.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return models.Room{}, fmt.Errorf("room not found: %w", services.ErrNotFound)
	}
	return room, nil
}

func (m *memStore) GetGuest(id uint) (models.Guest, error) {
	guest, ok := m.guests[id]
	if !ok {
		return models.Guest{}, fmt.Errorf("guest not found: %w", services.ErrNotFound)
	}
	return guest, nil
}

func (m *memStore) GetActiveOccupation(roomID uint) (*models.Occupation, error) {
	for _, occ := range m.occupations {
		if occ.ActiveRoomID != nil && *occ.ActiveRoomID == roomID {
			copied := *occ
			copied.Products = append([]models.Product(nil), occ.Products...)
			copied.Extras = append([]models.ExtraCharge(nil), occ.Extras...)
			copied.Payments = append([]models.Payment(nil), occ.Payments...)
			if occ.GuestID != nil {
				if guest, ok := m.guests[*occ.GuestID]; ok {
					copied.Guest = &guest
				}
			}
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateOccupation(occ *models.Occupation) error {
	if occ.ActiveRoomID != nil {
		for _, existing := range m.occupations {
			if existing.ActiveRoomID != nil && *existing.ActiveRoomID == *occ.ActiveRoomID {
				return fmt.Errorf("room already has an active occupation: %w", services.ErrInvalidState)
			}
		}
	}
	occ.ID = m.nextOccID
	m.nextOccID++
	stored := *occ
	m.occupations[occ.ID] = &stored
	return nil
}

func (m *memStore) FinalizeOccupation(occupationID uint, checkOut time.Time) error {
	occ, ok := m.occupations[occupationID]
	if !ok {
		return fmt.Errorf("occupation not found: %w", services.ErrNotFound)
	}
	occ.Status = models.OccupationFinalized
	occ.CheckOut = &checkOut
	occ.ActiveRoomID = nil
	return nil
}

func (m *memStore) AppendProduct(occupationID uint, item models.Product) error {
	occ, ok := m.occupations[occupationID]
	if !ok {
		return fmt.Errorf("occupation not found: %w", services.ErrNotFound)
	}
	item.ID = m.nextItemID
	m.nextItemID++
	occ.Products = append(occ.Products, item)
	return nil
}

func (m *memStore) AppendExtra(occupationID uint, item models.ExtraCharge) error {
	occ, ok := m.occupations[occupationID]
	if !ok {
		return fmt.Errorf("occupation not found: %w", services.ErrNotFound)
	}
	item.ID = m.nextItemID
	m.nextItemID++
	occ.Extras = append(occ.Extras, item)
	return nil
}

func (m *memStore) AppendPayment(occupationID uint, item models.Payment) error {
	occ, ok := m.occupations[occupationID]
	if !ok {
		return fmt.Errorf("occupation not found: %w", services.ErrNotFound)
	}
	item.ID = m.nextItemID
	m.nextItemID++
	occ.Payments = append(occ.Payments, item)
	return nil
}

func (m *memStore) RemoveLineItem(occupationID uint, kind models.LineItemKind, index int) error {
	occ, ok := m.occupations[occupationID]
	if !ok {
		return fmt.Errorf("occupation not found: %w", services.ErrNotFound)
	}
	if index < 0 {
		return fmt.Errorf("line item index out of range: %w", services.ErrInvalidInput)
	}
	switch kind {
	case models.KindProduct:
		if index >= len(occ.Products) {
			return fmt.Errorf("line item index out of range: %w", services.ErrNotFound)
		}
		occ.Products = append(occ.Products[:index], occ.Products[index+1:]...)
	case models.KindExtra:
		if index >= len(occ.Extras) {
			return fmt.Errorf("line item index out of range: %w", services.ErrNotFound)
		}
		occ.Extras = append(occ.Extras[:index], occ.Extras[index+1:]...)
	case models.KindPayment:
		if index >= len(occ.Payments) {
			return fmt.Errorf("line item index out of range: %w", services.ErrNotFound)
		}
		occ.Payments = append(occ.Payments[:index], occ.Payments[index+1:]...)
	default:
		return fmt.Errorf("unknown line item kind %q: %w", kind, services.ErrInvalidInput)
	}
	return nil
}

func (m *memStore) SetRoomStatus(roomID uint, status string) error {
	room, ok := m.rooms[roomID]
	if !ok {
		return fmt.Errorf("room not found: %w", services.ErrNotFound)
	}
	room.Status = status
	m.rooms[roomID] = room
	return nil
}

func (m *memStore) DeleteRoom(id uint) error {
	delete(m.rooms, id)
	return nil
}

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestDesk(t *testing.T) (*services.FrontDeskService, *memStore) {
	t.Helper()
	store := newMemStore()
	return services.NewFrontDeskService(store), store
}

func addRoom(store *memStore, id uint, price string, status string) {
	room := models.Room{Number: fmt.Sprintf("%d", 100+id), Type: "Standard", Capacity: 2, Price: d(price), Status: status}
	room.ID = id
	store.rooms[id] = room
}

func addGuest(store *memStore, id uint, name string) {
	guest := models.Guest{Name: name, IDNumber: fmt.Sprintf("ID-%d", id)}
	guest.ID = id
	store.guests[id] = guest
}

// =============================================================================
// OCCUPY
// =============================================================================

func TestOccupy_OpensActiveOccupation(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)
	addGuest(store, 7, "Ada Lovelace")

	guestID := uint(7)
	account, err := desk.Occupy(1, 2, &guestID)
	require.NoError(t, err)

	assert.Equal(t, models.RoomOccupied, account.Status)
	assert.Equal(t, 2, account.Nights)
	require.NotNil(t, account.Guest)
	assert.Equal(t, "Ada Lovelace", account.Guest.Name)
	assert.NotNil(t, account.CheckIn)
	assert.Empty(t, account.Products)
	assert.Empty(t, account.Extras)
	assert.Empty(t, account.Payments)
	assert.True(t, account.Balance.Equal(d("100")), "fresh stay owes nights x price")
}

func TestOccupy_WithoutGuest(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "80", models.RoomAvailable)

	account, err := desk.Occupy(1, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, account.Guest)
	assert.Equal(t, models.RoomOccupied, account.Status)
}

func TestOccupy_RoomNotAvailable(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)
	_, err := desk.Occupy(1, 1, nil)
	require.NoError(t, err)

	_, err = desk.Occupy(1, 3, nil)
	require.ErrorIs(t, err, services.ErrInvalidState)

	// Guard must not touch state: still exactly one active occupation.
	occ, storeErr := store.GetActiveOccupation(1)
	require.NoError(t, storeErr)
	require.NotNil(t, occ)
	assert.Equal(t, 1, occ.Nights)
}

func TestOccupy_MaintenanceRoomRefused(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomMaintenance)

	_, err := desk.Occupy(1, 1, nil)
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestOccupy_InvalidNights(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)

	_, err := desk.Occupy(1, 0, nil)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = desk.Occupy(1, -2, nil)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestOccupy_UnknownRoomOrGuest(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)

	_, err := desk.Occupy(99, 1, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)

	missing := uint(42)
	_, err = desk.Occupy(1, 1, &missing)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Failed guest lookup must not leave the room occupied.
	room, roomErr := store.GetRoom(1)
	require.NoError(t, roomErr)
	assert.Equal(t, models.RoomAvailable, room.Status)
}

// =============================================================================
// LINE ITEMS
// =============================================================================

func TestAddProduct_RequiresOccupiedRoom(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)

	_, err := desk.AddProduct(1, "Soda", d("5"))
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestAddProduct_Validation(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)
	_, err := desk.Occupy(1, 1, nil)
	require.NoError(t, err)

	_, err = desk.AddProduct(1, "   ", d("5"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = desk.AddProduct(1, "Soda", d("0"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = desk.AddExtra(1, "", d("10"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = desk.AddExtra(1, "Laundry", d("-1"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestLineItems_AccumulateOnBalance(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "100", models.RoomAvailable)
	_, err := desk.Occupy(1, 3, nil)
	require.NoError(t, err)

	account, err := desk.AddProduct(1, "Soda", d("5"))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(d("305")))

	account, err = desk.AddExtra(1, "Laundry", d("20"))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(d("325")))
	assert.True(t, account.StayTotal.Equal(d("300")))
	assert.True(t, account.ProductsTotal.Equal(d("5")))
	assert.True(t, account.ExtrasTotal.Equal(d("20")))
}

func TestRemoveLineItem_ByPosition(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)
	_, err := desk.Occupy(1, 1, nil)
	require.NoError(t, err)

	_, err = desk.AddProduct(1, "Soda", d("5"))
	require.NoError(t, err)
	_, err = desk.AddProduct(1, "Water", d("2"))
	require.NoError(t, err)

	account, err := desk.RemoveLineItem(1, models.KindProduct, 0)
	require.NoError(t, err)
	require.Len(t, account.Products, 1)
	assert.Equal(t, "Water", account.Products[0].Name)

	_, err = desk.RemoveLineItem(1, models.KindProduct, 5)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = desk.RemoveLineItem(1, models.KindProduct, -1)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestRemoveLineItem_RequiresOccupiedRoom(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)

	_, err := desk.RemoveLineItem(1, models.KindProduct, 0)
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

// =============================================================================
// PAYMENTS
// =============================================================================

func TestAddPayment_RejectsZeroAndNegative(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)
	_, err := desk.Occupy(1, 1, nil)
	require.NoError(t, err)

	_, err = desk.AddPayment(1, d("0"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = desk.AddPayment(1, d("-10"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestAddPayment_ExceedingBalanceRejected(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "100", models.RoomAvailable)
	_, err := desk.Occupy(1, 3, nil)
	require.NoError(t, err)
	_, err = desk.AddProduct(1, "Soda", d("5"))
	require.NoError(t, err)
	_, err = desk.AddExtra(1, "Laundry", d("20"))
	require.NoError(t, err)

	_, err = desk.AddPayment(1, d("400"))
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	var tooLarge *services.PaymentTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.True(t, tooLarge.MaxAmount.Equal(d("325")), "rejection carries the max allowed amount")

	// Balance unchanged, no payment appended.
	account, accErr := desk.Account(1)
	require.NoError(t, accErr)
	assert.Empty(t, account.Payments)
	assert.True(t, account.Balance.Equal(d("325")))
}

func TestAddPayment_UpToBalanceAccepted(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "100", models.RoomAvailable)
	_, err := desk.Occupy(1, 3, nil)
	require.NoError(t, err)
	_, err = desk.AddProduct(1, "Soda", d("5"))
	require.NoError(t, err)
	_, err = desk.AddExtra(1, "Laundry", d("20"))
	require.NoError(t, err)

	account, err := desk.AddPayment(1, d("325"))
	require.NoError(t, err)
	require.Len(t, account.Payments, 1)
	assert.False(t, account.Payments[0].PaidAt.IsZero(), "payment records its timestamp")
	assert.True(t, account.Balance.IsZero())
}

// =============================================================================
// CHECKOUT
// =============================================================================

func TestCheckOut_BlockedWhileBalanceOutstanding(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "100", models.RoomAvailable)
	_, err := desk.Occupy(1, 3, nil)
	require.NoError(t, err)
	_, err = desk.AddProduct(1, "Soda", d("5"))
	require.NoError(t, err)

	_, err = desk.CheckOut(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrBalanceNotCleared)

	var notCleared *services.BalanceNotClearedError
	require.ErrorAs(t, err, &notCleared)
	assert.True(t, notCleared.Balance.Equal(d("305")))

	// Room stays occupied with all line items intact.
	account, accErr := desk.Account(1)
	require.NoError(t, accErr)
	assert.Equal(t, models.RoomOccupied, account.Status)
	assert.Len(t, account.Products, 1)
	assert.True(t, account.Balance.Equal(d("305")))
}

func TestCheckOut_RequiresOccupiedRoom(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "100", models.RoomAvailable)

	_, err := desk.CheckOut(1)
	assert.ErrorIs(t, err, services.ErrInvalidState)
}

func TestCheckOut_FullyPaidStay(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "100", models.RoomAvailable)
	_, err := desk.Occupy(1, 3, nil)
	require.NoError(t, err)
	_, err = desk.AddProduct(1, "Soda", d("5"))
	require.NoError(t, err)
	_, err = desk.AddExtra(1, "Laundry", d("20"))
	require.NoError(t, err)
	_, err = desk.AddPayment(1, d("325"))
	require.NoError(t, err)

	account, err := desk.CheckOut(1)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, account.Status)
	assert.Equal(t, 0, account.Nights)
	assert.Empty(t, account.Products)
	assert.True(t, account.Balance.IsZero())

	// The stay is kept for history, finalized with a check-out timestamp.
	occ := store.occupations[1]
	require.NotNil(t, occ)
	assert.Equal(t, models.OccupationFinalized, occ.Status)
	assert.NotNil(t, occ.CheckOut)
	assert.Len(t, occ.Products, 1)
	assert.Len(t, occ.Extras, 1)
	assert.Len(t, occ.Payments, 1)
}

func TestRoundTrip_CheckOutThenReoccupy(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)

	_, err := desk.Occupy(1, 2, nil)
	require.NoError(t, err)
	_, err = desk.AddProduct(1, "Sandwich", d("10"))
	require.NoError(t, err)
	_, err = desk.AddExtra(1, "Parking", d("5"))
	require.NoError(t, err)

	account, err := desk.AddPayment(1, d("115"))
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())

	account, err = desk.CheckOut(1)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, account.Status)

	// A fresh occupation starts with an empty line-item set.
	account, err = desk.Occupy(1, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, account.Products)
	assert.Empty(t, account.Extras)
	assert.Empty(t, account.Payments)
	assert.True(t, account.Balance.Equal(d("50")))
}

// =============================================================================
// DELETE ROOM
// =============================================================================

func TestDeleteRoom_OccupiedRefused(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)
	_, err := desk.Occupy(1, 1, nil)
	require.NoError(t, err)

	err = desk.DeleteRoom(1)
	assert.ErrorIs(t, err, services.ErrInvalidState)

	_, err = store.GetRoom(1)
	assert.NoError(t, err, "guarded delete must not remove the room")
}

func TestDeleteRoom_VacantRoom(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomMaintenance)

	require.NoError(t, desk.DeleteRoom(1))

	_, err := store.GetRoom(1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

// =============================================================================
// ACCOUNT VIEW
// =============================================================================

func TestAccount_VacantRoom(t *testing.T) {
	desk, store := newTestDesk(t)
	addRoom(store, 1, "50", models.RoomAvailable)

	account, err := desk.Account(1)
	require.NoError(t, err)
	assert.Equal(t, 0, account.Nights)
	assert.Nil(t, account.CheckIn)
	assert.Nil(t, account.Guest)
	assert.NotNil(t, account.Products)
	assert.Empty(t, account.Products)
	assert.True(t, account.Balance.IsZero())
	assert.True(t, account.StayTotal.IsZero())
}
