package receipt

import (
	"fmt"
	"strings"
	"time"

	"travel-portal/types/booking"
)

// Render builds the plain-text receipt for a finalized booking.
func Render(b booking.Booking, issuedAt time.Time) string {
	var sb strings.Builder
	line := strings.Repeat("-", 48)

	sb.WriteString("TRAVEL BOOKING RECEIPT\n")
	sb.WriteString(line + "\n")
	fmt.Fprintf(&sb, "Booking ID:   %s\n", b.ID)
	fmt.Fprintf(&sb, "Status:       %s\n", b.Status)
	if b.PackageTitle != "" {
		fmt.Fprintf(&sb, "Package:      %s\n", b.PackageTitle)
	} else {
		fmt.Fprintf(&sb, "Package ID:   %s\n", b.PackageID)
	}
	fmt.Fprintf(&sb, "Travel dates: %s to %s\n", b.StartDate, b.EndDate)
	fmt.Fprintf(&sb, "Travelers:    %d adult(s), %d child(ren), %d infant(s)\n", b.Adults, b.Children, b.Infants)
	for i, name := range b.Travelers {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, name)
	}
	sb.WriteString(line + "\n")
	fmt.Fprintf(&sb, "Contact:      %s\n", b.Contact.Name)
	fmt.Fprintf(&sb, "Email:        %s\n", b.Contact.Email)
	fmt.Fprintf(&sb, "Phone:        %s\n", b.Contact.Phone)
	fmt.Fprintf(&sb, "Insurance:    %s\n", yesNo(b.HasInsurance))
	sb.WriteString(line + "\n")

	amount := b.TotalAmount
	if p := b.Payment; p != nil {
		if p.Amount > 0 {
			amount = p.Amount
		}
		fmt.Fprintf(&sb, "Payment ID:   %s\n", p.PaymentID)
		fmt.Fprintf(&sb, "Order ID:     %s\n", p.OrderID)
		fmt.Fprintf(&sb, "Method:       %s\n", p.Method)
		fmt.Fprintf(&sb, "Payment:      %s\n", p.Status)
	}
	fmt.Fprintf(&sb, "Total paid:   INR %.2f\n", amount)
	sb.WriteString(line + "\n")
	fmt.Fprintf(&sb, "Issued:       %s\n", issuedAt.Format("02 Jan 2006 15:04 MST"))

	return sb.String()
}

// FileName is the attachment name for a booking's receipt.
func FileName(bookingID string) string {
	return "receipt-" + bookingID + ".txt"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
