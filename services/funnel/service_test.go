package funnel

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"travel-portal/httpServices/gateway"
	draftModel "travel-portal/models/draft"
	funnelModel "travel-portal/models/funnel"
	"travel-portal/services/validation"
	"travel-portal/types"
	"travel-portal/types/booking"
	"travel-portal/types/insurance"
	"travel-portal/types/payment"
	"travel-portal/types/travelpackage"
	"travel-portal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]funnelModel.Session
	events   []funnelModel.StageEvent
	drafts   map[string]draftModel.BookingDraft
}

func newMemStore() *memStore {
	return &memStore{
		sessions: map[string]funnelModel.Session{},
		drafts:   map[string]draftModel.BookingDraft{},
	}
}

func (m *memStore) CreateSession(ctx context.Context, s *funnelModel.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	m.events = append(m.events, funnelModel.EventFor(s, ""))
	return nil
}

func (m *memStore) GetSession(ctx context.Context, id string) (*funnelModel.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *memStore) SaveSession(ctx context.Context, s *funnelModel.Session, from funnelModel.Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.ID].Stage != from {
		return ErrStageConflict
	}
	m.sessions[s.ID] = *s
	if s.Stage != from {
		m.events = append(m.events, funnelModel.EventFor(s, from))
	}
	return nil
}

func (m *memStore) ListEvents(ctx context.Context, sessionID string) ([]funnelModel.StageEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []funnelModel.StageEvent{}
	for _, e := range m.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) GetDraft(ctx context.Context, userID string) (*draftModel.BookingDraft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[userID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memStore) PutDraft(ctx context.Context, d *draftModel.BookingDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[d.UserID] = *d
	return nil
}

func (m *memStore) DeleteDraft(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, userID)
	return nil
}

type fakeGateway struct {
	pkg          travelpackage.Package
	bookingTotal float64
	verify       *payment.VerificationResult
	verifyErr    error

	calls    int
	booked   booking.Booking
	selected []string
	orderReq payment.CreateOrderRequest
}

func (f *fakeGateway) GetPackage(ctx context.Context, token, id string) (*travelpackage.Package, error) {
	f.calls++
	if id != f.pkg.ID {
		return nil, &gateway.APIError{Status: http.StatusNotFound, Message: "Package not found"}
	}
	p := f.pkg
	return &p, nil
}

func (f *fakeGateway) CreateBooking(ctx context.Context, token string, b booking.Booking) (*booking.Booking, error) {
	f.calls++
	f.booked = b
	b.ID = "b-100"
	if f.bookingTotal > 0 {
		b.TotalAmount = f.bookingTotal
	}
	return &b, nil
}

func (f *fakeGateway) SelectPlan(ctx context.Context, token, planID, bookingID, userID string) (*insurance.Selection, error) {
	f.calls++
	f.selected = []string{planID, bookingID, userID}
	return &insurance.Selection{ID: "sel-1", PlanID: planID, BookingID: bookingID, UserID: userID}, nil
}

func (f *fakeGateway) CreateOrder(ctx context.Context, token string, req payment.CreateOrderRequest) (*payment.Order, error) {
	f.calls++
	f.orderReq = req
	return &payment.Order{OrderID: "order_1", Amount: req.Amount, Currency: "INR", KeyID: "rzp_test"}, nil
}

func (f *fakeGateway) VerifyPayment(ctx context.Context, token string, v payment.Verification) (*payment.VerificationResult, error) {
	f.calls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if f.verify != nil {
		return f.verify, nil
	}
	return &payment.VerificationResult{Verified: true, BookingID: "b-100"}, nil
}

type fallbackPlans struct{}

func (fallbackPlans) Find(ctx context.Context, token, planID string) (insurance.Plan, bool) {
	return insurance.FindPlan(insurance.FallbackPlans(), planID)
}

var alice = types.Principal{UserID: "u-1", Role: "USER", Token: "tok"}

func validForm() booking.CreateForm {
	return booking.CreateForm{
		PackageID:     "p-1",
		StartDate:     "2026-12-01",
		EndDate:       "2026-12-05",
		Adults:        2,
		Children:      1,
		Contact:       booking.Contact{Name: "Alice", Email: "alice@example.com", Phone: "9876543210"},
		Travelers:     []string{"Alice", "Bob", "Carol"},
		HasInsurance:  true,
		TermsAccepted: true,
	}
}

func newTestService(gw *fakeGateway) (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(gw, fallbackPlans{}, store, NewDrafts(store, nil))
	svc.newID = func() string { return "s-1" }
	return svc, store
}

func TestStartBooking_InvalidFormMakesNoGatewayCall(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, _ := newTestService(gw)

	form := validForm()
	form.Contact.Email = "  "
	form.Travelers[1] = " "
	form.TermsAccepted = false

	_, err := svc.StartBooking(context.Background(), alice, form)

	var fieldErrs validation.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "contact.email")
	assert.Contains(t, fieldErrs, "travelers[1]")
	assert.Equal(t, booking.TermsMessage, fieldErrs["termsAccepted"])
	assert.Zero(t, gw.calls)
}

func TestFunnel_FullPathWithInsurance(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, store := newTestService(gw)
	ctx := context.Background()

	step, err := svc.StartBooking(ctx, alice, validForm())
	require.NoError(t, err)
	assert.Equal(t, Step{SessionID: "s-1", BookingID: "b-100", UserID: "u-1", TotalAmount: 3975, Next: funnelModel.StageInsurance}, *step)
	assert.Equal(t, booking.StatusPending, gw.booked.Status)
	assert.Equal(t, "u-1", gw.booked.UserID)

	step, err = svc.SelectInsurance(ctx, alice, "s-1", "Medium")
	require.NoError(t, err)
	assert.Equal(t, funnelModel.StagePayment, step.Next)
	assert.Equal(t, 3975.0+899, step.TotalAmount)
	assert.Equal(t, []string{"medium", "b-100", "u-1"}, gw.selected)

	order, err := svc.CreateOrder(ctx, alice, "s-1", payment.OrderForm{})
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.OrderID)
	assert.Equal(t, payment.CreateOrderRequest{BookingID: "b-100", UserID: "u-1", Amount: 4874, Method: "card"}, gw.orderReq)

	step, err = svc.VerifyPayment(ctx, alice, "s-1", payment.Verification{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"})
	require.NoError(t, err)
	assert.Equal(t, funnelModel.StageConfirmed, step.Next)
	assert.Equal(t, "b-100", step.BookingID)

	saved, err := store.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, funnelModel.StageConfirmed, saved.Stage)
	assert.Equal(t, "medium", saved.InsurancePlanID)

	history, err := svc.History(ctx, alice, "s-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, funnelModel.Stage(""), history[0].From)
	assert.Equal(t, funnelModel.StageInsurance, history[0].To)
	assert.Equal(t, funnelModel.StagePayment, history[1].To)
	assert.Equal(t, funnelModel.StagePayment, history[2].From)
	assert.Equal(t, funnelModel.StageConfirmed, history[2].To)
}

func TestStartBooking_PrefersBackendTotal(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}, bookingTotal: 4100}
	svc, _ := newTestService(gw)

	form := validForm()
	form.HasInsurance = false
	step, err := svc.StartBooking(context.Background(), alice, form)

	require.NoError(t, err)
	assert.Equal(t, 4100.0, step.TotalAmount)
	assert.Equal(t, funnelModel.StagePayment, step.Next)
}

func TestStartBooking_InactivePackage(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: false}}
	svc, _ := newTestService(gw)

	_, err := svc.StartBooking(context.Background(), alice, validForm())

	assert.ErrorIs(t, err, ErrPackageUnavailable)
}

func TestStartBooking_ClearsDraft(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, store := newTestService(gw)
	ctx := context.Background()
	require.NoError(t, svc.drafts.Save(ctx, "u-1", Draft{CreateForm: validForm(), GuestCount: 3}))

	_, err := svc.StartBooking(ctx, alice, validForm())
	require.NoError(t, err)

	d, err := store.GetDraft(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestFunnel_StageGating(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, _ := newTestService(gw)
	ctx := context.Background()
	_, err := svc.StartBooking(ctx, alice, validForm())
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, alice, "s-1", payment.OrderForm{})
	var stageErr *funnelModel.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, funnelModel.StageInsurance, stageErr.Got)

	_, err = svc.SkipInsurance(ctx, alice, "s-1")
	require.NoError(t, err)

	_, err = svc.SkipInsurance(ctx, alice, "s-1")
	assert.True(t, errors.As(err, &stageErr))
}

func TestFunnel_SkipInsuranceKeepsTotal(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, _ := newTestService(gw)
	ctx := context.Background()
	_, err := svc.StartBooking(ctx, alice, validForm())
	require.NoError(t, err)

	step, err := svc.SkipInsurance(ctx, alice, "s-1")

	require.NoError(t, err)
	assert.Equal(t, 3975.0, step.TotalAmount)
	assert.Nil(t, gw.selected)
}

func TestSelectInsurance_UnknownPlan(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, _ := newTestService(gw)
	ctx := context.Background()
	_, err := svc.StartBooking(ctx, alice, validForm())
	require.NoError(t, err)

	_, err = svc.SelectInsurance(ctx, alice, "s-1", "platinum")

	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestFunnel_OtherUsersCannotAdvance(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc, _ := newTestService(gw)
	ctx := context.Background()
	_, err := svc.StartBooking(ctx, alice, validForm())
	require.NoError(t, err)

	mallory := types.Principal{UserID: "u-2", Role: "USER"}
	_, err = svc.SkipInsurance(ctx, mallory, "s-1")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Session(ctx, mallory, "s-1")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.History(ctx, mallory, "s-1")
	assert.ErrorIs(t, err, ErrNotOwner)

	admin := types.Principal{UserID: "a-1", Role: "ADMIN"}
	s, err := svc.Session(ctx, admin, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "b-100", s.BookingID)
}

func paymentStage(t *testing.T, gw *fakeGateway) *Service {
	t.Helper()
	svc, _ := newTestService(gw)
	ctx := context.Background()
	form := validForm()
	form.HasInsurance = false
	_, err := svc.StartBooking(ctx, alice, form)
	require.NoError(t, err)
	return svc
}

func TestVerifyPayment_RequiresOrder(t *testing.T) {
	svc := paymentStage(t, &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}})

	_, err := svc.VerifyPayment(context.Background(), alice, "s-1", payment.Verification{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"})

	assert.ErrorIs(t, err, ErrOrderMissing)
}

func TestVerifyPayment_OrderMismatch(t *testing.T) {
	gw := &fakeGateway{pkg: travelpackage.Package{ID: "p-1", Price: 1500, Active: true}}
	svc := paymentStage(t, gw)
	ctx := context.Background()
	_, err := svc.CreateOrder(ctx, alice, "s-1", payment.OrderForm{Method: "upi"})
	require.NoError(t, err)
	calls := gw.calls

	_, err = svc.VerifyPayment(ctx, alice, "s-1", payment.Verification{OrderID: "order_other", PaymentID: "pay_1", Signature: "sig"})

	assert.ErrorIs(t, err, ErrOrderMismatch)
	assert.Equal(t, calls, gw.calls)
}

func TestVerifyPayment_FailureLeavesSessionAtPayment(t *testing.T) {
	gw := &fakeGateway{
		pkg:       travelpackage.Package{ID: "p-1", Price: 1500, Active: true},
		verifyErr: &gateway.APIError{Status: http.StatusBadRequest, Message: "Signature mismatch"},
	}
	svc := paymentStage(t, gw)
	ctx := context.Background()
	_, err := svc.CreateOrder(ctx, alice, "s-1", payment.OrderForm{})
	require.NoError(t, err)
	v := payment.Verification{OrderID: "order_1", PaymentID: "pay_1", Signature: "bad"}

	_, err = svc.VerifyPayment(ctx, alice, "s-1", v)
	var payErr *PaymentError
	require.True(t, errors.As(err, &payErr))
	assert.Equal(t, "Signature mismatch", payErr.Message)

	s, err := svc.Session(ctx, alice, "s-1")
	require.NoError(t, err)
	assert.Equal(t, funnelModel.StagePayment, s.Stage)

	gw.verifyErr = nil
	gw.verify = &payment.VerificationResult{Verified: false}
	_, err = svc.VerifyPayment(ctx, alice, "s-1", v)
	require.True(t, errors.As(err, &payErr))
	assert.Equal(t, defaultVerifyFailedMsg, payErr.Message)

	gw.verify = nil
	step, err := svc.VerifyPayment(ctx, alice, "s-1", v)
	require.NoError(t, err)
	assert.Equal(t, funnelModel.StageConfirmed, step.Next)
}

func TestVerifyPayment_GatewayOutageIsNotAPaymentError(t *testing.T) {
	gw := &fakeGateway{
		pkg:       travelpackage.Package{ID: "p-1", Price: 1500, Active: true},
		verifyErr: &gateway.APIError{Status: http.StatusServiceUnavailable, Message: "down"},
	}
	svc := paymentStage(t, gw)
	ctx := context.Background()
	_, err := svc.CreateOrder(ctx, alice, "s-1", payment.OrderForm{})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(ctx, alice, "s-1", payment.Verification{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"})

	var payErr *PaymentError
	assert.False(t, errors.As(err, &payErr))
	assert.Equal(t, http.StatusBadGateway, gateway.StatusOf(err))
}

func TestDrafts_EncryptedRoundTrip(t *testing.T) {
	store := newMemStore()
	cipher, err := utils.NewCipher("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	drafts := NewDrafts(store, cipher)
	ctx := context.Background()

	none, err := drafts.Load(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, none)

	form := validForm()
	form.Contact.Name = "First"
	require.NoError(t, drafts.Save(ctx, "u-1", Draft{CreateForm: form, GuestCount: 3}))
	form.Contact.Name = "Second"
	require.NoError(t, drafts.Save(ctx, "u-1", Draft{CreateForm: form, GuestCount: 4}))

	row := store.drafts["u-1"]
	assert.True(t, row.Encrypted)
	assert.NotContains(t, row.Payload, "Second")

	got, err := drafts.Load(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Contact.Name)
	assert.Equal(t, 4, got.GuestCount)

	_, err = NewDrafts(store, nil).Load(ctx, "u-1")
	assert.Error(t, err)
}
