package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItemKind tags the three line-item variants attached to an occupation.
type LineItemKind string

const (
	KindProduct LineItemKind = "product"
	KindExtra   LineItemKind = "extra"
	KindPayment LineItemKind = "payment"
)

// Product is a consumed item charged to the room.
type Product struct {
	gorm.Model

	OccupationID uint            `json:"-" gorm:"index"`
	Name         string          `json:"name" gorm:"type:varchar(120)"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
}

func (p Product) Amount() decimal.Decimal { return p.Price }

// ExtraCharge is a miscellaneous charge (laundry, damage, ...).
type ExtraCharge struct {
	gorm.Model

	OccupationID uint            `json:"-" gorm:"index"`
	Description  string          `json:"description" gorm:"type:varchar(200)"`
	Charge       decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(10,2)"`
}

func (e ExtraCharge) Amount() decimal.Decimal { return e.Charge }

// Payment reduces the outstanding balance of the stay.
type Payment struct {
	gorm.Model

	OccupationID uint            `json:"-" gorm:"index"`
	Paid         decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(10,2)"`
	PaidAt       time.Time       `json:"date"`
}

func (p Payment) Amount() decimal.Decimal { return p.Paid }
