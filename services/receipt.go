package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// Folio renders a printable account statement for the room's active stay.
// It returns the PDF bytes and a suggested filename.
func (s *FrontDeskService) Folio(roomID uint) ([]byte, string, error) {
	account, err := s.Account(roomID)
	if err != nil {
		return nil, "", err
	}
	if account.CheckIn == nil {
		return nil, "", fmt.Errorf("room has no active stay: %w", ErrInvalidState)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Guest Folio", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "GUEST FOLIO")
	pdf.Ln(12)

	guestName := "-"
	if account.Guest != nil {
		guestName = account.Guest.Name
	}

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Room       : %s (%s)", account.Number, account.Type),
		fmt.Sprintf("Guest      : %s", guestName),
		fmt.Sprintf("Check-in   : %s", account.CheckIn.Format("2006-01-02 15:04")),
		fmt.Sprintf("Nights     : %d x $%s", account.Nights, account.Price.StringFixed(2)),
		fmt.Sprintf("Printed    : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Stay (%d nights): $%s", account.Nights, account.StayTotal.StringFixed(2)))
	pdf.Ln(6)
	for _, p := range account.Products {
		pdf.Cell(0, 6, fmt.Sprintf("Product  %-20s $%s", p.Name, p.Price.StringFixed(2)))
		pdf.Ln(6)
	}
	for _, e := range account.Extras {
		pdf.Cell(0, 6, fmt.Sprintf("Extra    %-20s $%s", e.Description, e.Charge.StringFixed(2)))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Payments")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	if len(account.Payments) == 0 {
		pdf.Cell(0, 6, "(none)")
		pdf.Ln(6)
	}
	for _, p := range account.Payments {
		pdf.Cell(0, 6, fmt.Sprintf("%s  $%s", p.PaidAt.Format("2006-01-02 15:04"), p.Paid.StringFixed(2)))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Balance due: $%s", account.Balance.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("FOLIO_%s_%s.pdf", account.Number, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
