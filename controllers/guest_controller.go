package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

type GuestController struct {
	guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{guests: guests}
}

// GetGuests (GET /api/guests)
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.guests.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// GetGuest (GET /api/guests/:id)
func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guest, err := gc.guests.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// CreateGuest (POST /api/guests)
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	created, err := gc.guests.Create(guest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateGuest (PUT /api/guests/:id)
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var upd services.GuestUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid request payload")
		return
	}
	guest, err := gc.guests.Update(id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// DeleteGuest (DELETE /api/guests/:id)
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := gc.guests.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest removed"})
}
