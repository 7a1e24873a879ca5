package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

type RoomController struct {
	rooms *services.RoomService
	desk  *services.FrontDeskService
}

func NewRoomController(rooms *services.RoomService, desk *services.FrontDeskService) *RoomController {
	return &RoomController{rooms: rooms, desk: desk}
}

// ----------------------------------------------------
// Room CRUD
// ----------------------------------------------------

// GetRooms (GET /api/rooms)
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.rooms.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom (GET /api/rooms/:id) returns the room with its account view.
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	account, err := rc.desk.Account(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

type createRoomRequest struct {
	Number   string          `json:"number"`
	Type     string          `json:"type"`
	Capacity int             `json:"capacity"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
	Services []string        `json:"services"`
	Image    string          `json:"image"`
}

// CreateRoom (POST /api/rooms)
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload")
		return
	}

	room := models.Room{
		Number:   req.Number,
		Type:     req.Type,
		Capacity: req.Capacity,
		Price:    req.Price,
		Status:   req.Status,
		Image:    req.Image,
	}
	if req.Services != nil {
		raw, err := json.Marshal(req.Services)
		if err != nil {
			badRequest(c, "invalid services list")
			return
		}
		room.Services = datatypes.JSON(raw)
	}

	created, err := rc.rooms.Create(room)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateRoom (PUT /api/rooms/:id) merges only the provided fields.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var upd services.RoomUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	room, err := rc.rooms.Update(id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom (DELETE /api/rooms/:id) refuses while the room is occupied.
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.desk.DeleteRoom(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room removed"})
}

// ----------------------------------------------------
// Occupancy lifecycle
// ----------------------------------------------------

type occupyRequest struct {
	Nights  int   `json:"nights"`
	GuestID *uint `json:"guestId"`
}

// Occupy (PUT /api/rooms/:id/occupy)
func (rc *RoomController) Occupy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req occupyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "nights must be a whole number")
		return
	}
	account, err := rc.desk.Occupy(id, req.Nights, req.GuestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// CheckOut (PUT /api/rooms/:id/checkout)
func (rc *RoomController) CheckOut(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	account, err := rc.desk.CheckOut(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// ----------------------------------------------------
// Line items
// ----------------------------------------------------

type addProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// AddProduct (POST /api/rooms/:id/products)
func (rc *RoomController) AddProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "price must be a valid number")
		return
	}
	account, err := rc.desk.AddProduct(id, req.Name, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

type addExtraRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// AddExtra (POST /api/rooms/:id/extras)
func (rc *RoomController) AddExtra(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req addExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount must be a valid number")
		return
	}
	account, err := rc.desk.AddExtra(id, req.Description, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

type addPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddPayment (POST /api/rooms/:id/payments)
func (rc *RoomController) AddPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req addPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount must be a valid number")
		return
	}
	account, err := rc.desk.AddPayment(id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// RemoveLineItem handles
// DELETE /api/rooms/:id/products/:index | extras/:index | payments/:index.
func (rc *RoomController) RemoveLineItem(kind models.LineItemKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil || index < 0 {
			badRequest(c, "invalid line item index")
			return
		}
		account, err := rc.desk.RemoveLineItem(id, kind, index)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// Receipt (GET /api/rooms/:id/receipt) streams the folio PDF for the
// active stay.
func (rc *RoomController) Receipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	data, filename, err := rc.desk.Folio(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
