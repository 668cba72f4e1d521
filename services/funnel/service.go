package funnel

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"travel-portal/constants"
	"travel-portal/httpServices/gateway"
	"travel-portal/logger"
	funnelModel "travel-portal/models/funnel"
	"travel-portal/services/pricing"
	"travel-portal/types"
	"travel-portal/types/booking"
	"travel-portal/types/insurance"
	"travel-portal/types/payment"
	"travel-portal/types/travelpackage"

	"github.com/google/uuid"
)

var (
	ErrNotOwner            = errors.New("you do not have access to this booking")
	ErrPackageUnavailable  = errors.New("this package is not available for booking")
	ErrUnknownPlan         = errors.New("insurance plan not found")
	ErrOrderMissing        = errors.New("no payment order has been created for this booking")
	ErrOrderMismatch       = errors.New("payment order does not belong to this booking")
	ErrMissingBookingID    = errors.New("booking service returned no booking id")
	defaultVerifyFailedMsg = "Payment verification failed. Please try again."
)

// PaymentError is a declined or unverifiable payment. The session stays
// at the payment step so the user can retry.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	return e.Message
}

// Gateway is the slice of the backend the funnel talks to.
type Gateway interface {
	GetPackage(ctx context.Context, token, id string) (*travelpackage.Package, error)
	CreateBooking(ctx context.Context, token string, b booking.Booking) (*booking.Booking, error)
	SelectPlan(ctx context.Context, token, planID, bookingID, userID string) (*insurance.Selection, error)
	CreateOrder(ctx context.Context, token string, req payment.CreateOrderRequest) (*payment.Order, error)
	VerifyPayment(ctx context.Context, token string, v payment.Verification) (*payment.VerificationResult, error)
}

// PlanFinder resolves an insurance plan by id or name.
type PlanFinder interface {
	Find(ctx context.Context, token, planID string) (insurance.Plan, bool)
}

// Step is what each stage hands to the next one.
type Step struct {
	SessionID   string            `json:"sessionId"`
	BookingID   string            `json:"bookingId"`
	UserID      string            `json:"userId"`
	TotalAmount float64           `json:"totalAmount"`
	Next        funnelModel.Stage `json:"next"`
}

func stepOf(s *funnelModel.Session) Step {
	return Step{
		SessionID:   s.ID,
		BookingID:   s.BookingID,
		UserID:      s.UserID,
		TotalAmount: s.TotalAmount,
		Next:        s.Stage,
	}
}

// Service drives a booking from the form through insurance and payment.
type Service struct {
	gw     Gateway
	plans  PlanFinder
	store  Store
	drafts *Drafts
	newID  func() string
}

func NewService(gw Gateway, plans PlanFinder, store Store, drafts *Drafts) *Service {
	return &Service{
		gw:     gw,
		plans:  plans,
		store:  store,
		drafts: drafts,
		newID:  uuid.NewString,
	}
}

// StartBooking validates the form, creates the PENDING booking and opens
// a funnel session for it. Invalid forms never reach the gateway.
func (s *Service) StartBooking(ctx context.Context, p types.Principal, form booking.CreateForm) (*Step, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.gw.GetPackage(ctx, p.Token, form.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.Active {
		return nil, ErrPackageUnavailable
	}

	estimate := pricing.Estimate(pkg.Price, form.Adults, form.Children, form.HasInsurance)
	created, err := s.gw.CreateBooking(ctx, p.Token, form.ToBooking(p.UserID, estimate.Total))
	if err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, ErrMissingBookingID
	}

	total := estimate.Total
	if created.TotalAmount > 0 {
		total = created.TotalAmount
	}

	session := &funnelModel.Session{
		ID:           s.newID(),
		UserID:       p.UserID,
		PackageID:    form.PackageID,
		BookingID:    created.ID,
		TotalAmount:  total,
		HasInsurance: form.HasInsurance,
		Stage:        funnelModel.InitialStage(form.HasInsurance),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save funnel session for booking %s: %w", created.ID, err)
	}

	if s.drafts != nil {
		if err := s.drafts.Clear(ctx, p.UserID); err != nil {
			logger.Warning(fmt.Sprintf("Failed to clear booking draft for user %s: %v", p.UserID, err))
		}
	}

	step := stepOf(session)
	return &step, nil
}

// Session returns the caller's session. Staff may read any session.
func (s *Service) Session(ctx context.Context, p types.Principal, id string) (*funnelModel.Session, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != p.UserID && !constants.IsStaff(p.Role) {
		return nil, ErrNotOwner
	}
	return session, nil
}

// History returns the session's stage events, with the same visibility
// as Session.
func (s *Service) History(ctx context.Context, p types.Principal, id string) ([]funnelModel.StageEvent, error) {
	if _, err := s.Session(ctx, p, id); err != nil {
		return nil, err
	}
	return s.store.ListEvents(ctx, id)
}

// owned loads a session for a state change, which only its owner may make.
func (s *Service) owned(ctx context.Context, p types.Principal, id string, want funnelModel.Stage) (*funnelModel.Session, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != p.UserID {
		return nil, ErrNotOwner
	}
	if err := session.Expect(want); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectInsurance records the plan with the insurance service, adds its
// price to the total and moves on to payment.
func (s *Service) SelectInsurance(ctx context.Context, p types.Principal, sessionID, planID string) (*Step, error) {
	session, err := s.owned(ctx, p, sessionID, funnelModel.StageInsurance)
	if err != nil {
		return nil, err
	}

	plan, ok := s.plans.Find(ctx, p.Token, planID)
	if !ok {
		return nil, ErrUnknownPlan
	}

	selection, err := s.gw.SelectPlan(ctx, p.Token, plan.ID, session.BookingID, session.UserID)
	if err != nil {
		return nil, err
	}

	amount := plan.Price
	if selection != nil && selection.Price > 0 {
		amount = selection.Price
	}
	session.InsurancePlanID = plan.ID
	session.InsuranceAmount = amount
	session.TotalAmount += amount

	return s.advance(ctx, session)
}

// SkipInsurance moves on to payment with the total unchanged.
func (s *Service) SkipInsurance(ctx context.Context, p types.Principal, sessionID string) (*Step, error) {
	session, err := s.owned(ctx, p, sessionID, funnelModel.StageInsurance)
	if err != nil {
		return nil, err
	}
	return s.advance(ctx, session)
}

// CreateOrder opens a payment order for the session total. Calling it
// again replaces the order, which is how a failed checkout is retried.
func (s *Service) CreateOrder(ctx context.Context, p types.Principal, sessionID string, form payment.OrderForm) (*payment.Order, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	session, err := s.owned(ctx, p, sessionID, funnelModel.StagePayment)
	if err != nil {
		return nil, err
	}

	order, err := s.gw.CreateOrder(ctx, p.Token, payment.CreateOrderRequest{
		BookingID: session.BookingID,
		UserID:    session.UserID,
		Amount:    session.TotalAmount,
		Method:    form.Method,
	})
	if err != nil {
		return nil, err
	}

	session.OrderID = order.OrderID
	session.PaymentMethod = form.Method
	if err := s.store.SaveSession(ctx, session, funnelModel.StagePayment); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyPayment checks the checkout callback with the payment service and
// confirms the booking on success.
func (s *Service) VerifyPayment(ctx context.Context, p types.Principal, sessionID string, v payment.Verification) (*Step, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	session, err := s.owned(ctx, p, sessionID, funnelModel.StagePayment)
	if err != nil {
		return nil, err
	}
	if session.OrderID == "" {
		return nil, ErrOrderMissing
	}
	if v.OrderID != session.OrderID {
		return nil, ErrOrderMismatch
	}

	result, err := s.gw.VerifyPayment(ctx, p.Token, v)
	if err != nil {
		if gateway.StatusOf(err) < http.StatusInternalServerError {
			return nil, &PaymentError{Message: gateway.MessageOf(err)}
		}
		return nil, err
	}
	if !result.Verified {
		msg := result.Message
		if msg == "" {
			msg = defaultVerifyFailedMsg
		}
		return nil, &PaymentError{Message: msg}
	}

	logger.Success(fmt.Sprintf("Payment verified for booking %s", session.BookingID))
	return s.advance(ctx, session)
}

func (s *Service) advance(ctx context.Context, session *funnelModel.Session) (*Step, error) {
	from := session.Stage
	if err := session.Advance(); err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(ctx, session, from); err != nil {
		return nil, err
	}
	step := stepOf(session)
	return &step, nil
}
