package payment

import (
	"travel-portal/services/validation"
)

// Payment is the payment sub-record nested in a finalized booking.
type Payment struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	OrderID   string  `json:"orderId"`
	PaymentID string  `json:"paymentId"`
	Status    string  `json:"status"`
	PaidAt    string  `json:"paidAt,omitempty"`
}

type CreateOrderRequest struct {
	BookingID string  `json:"bookingId"`
	UserID    string  `json:"userId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

// Order is what the hosted checkout widget is opened with.
type Order struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
}

type OrderForm struct {
	Method string `json:"method" validate:"omitempty,oneof=card upi netbanking wallet"`
}

func (f *OrderForm) Validate() error {
	if f.Method == "" {
		f.Method = "card"
	}
	return validation.Struct(f).OrNil()
}

// Verification is the triple returned by the checkout widget's callback.
type Verification struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

func (v *Verification) Validate() error {
	return validation.Struct(v).OrNil()
}

type VerificationResult struct {
	Verified  bool   `json:"verified"`
	BookingID string `json:"bookingId,omitempty"`
	Message   string `json:"message,omitempty"`
}
