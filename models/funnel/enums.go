package funnel

import "fmt"

type Stage string

const (
	StageInsurance Stage = "insurance"
	StagePayment   Stage = "payment"
	StageConfirmed Stage = "confirmed"
)

func (s Stage) String() string {
	return string(s)
}

func (s Stage) IsValid() bool {
	switch s {
	case StageInsurance, StagePayment, StageConfirmed:
		return true
	default:
		return false
	}
}

// Next is the stage that follows s; confirmed has none.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case StageInsurance:
		return StagePayment, true
	case StagePayment:
		return StageConfirmed, true
	default:
		return "", false
	}
}

// InitialStage is where a new booking enters the funnel.
func InitialStage(hasInsurance bool) Stage {
	if hasInsurance {
		return StageInsurance
	}
	return StagePayment
}

// StageError reports a call made at the wrong point of the funnel.
type StageError struct {
	Want Stage
	Got  Stage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("booking is at the %s step, not %s", e.Got, e.Want)
}

// Expect returns a StageError unless the session is at want.
func (s *Session) Expect(want Stage) error {
	if s.Stage != want {
		return &StageError{Want: want, Got: s.Stage}
	}
	return nil
}

// Advance moves the session to the stage after its current one.
func (s *Session) Advance() error {
	next, ok := s.Stage.Next()
	if !ok {
		return fmt.Errorf("booking %s is already %s", s.BookingID, s.Stage)
	}
	s.Stage = next
	return nil
}
