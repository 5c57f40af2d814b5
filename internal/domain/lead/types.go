package lead

import "errors"

var ErrInvalidStatus = errors.New("invalid lead status")

// Status is the closed set of lead states. Unknown strings are rejected
// at the API boundary; nothing normalizes case or format downstream.
type Status string

const (
	StatusNew            Status = "NEW"
	StatusVerified       Status = "VERIFIED"
	StatusOfferReceived  Status = "OFFER_RECEIVED"
	StatusDealerSelected Status = "DEALER_SELECTED"
	StatusConverted      Status = "CONVERTED"
	StatusRejected       Status = "REJECTED"
	StatusDuplicate      Status = "DUPLICATE"
	StatusClosed         Status = "CLOSED"
	StatusFollowUp       Status = "FOLLOW_UP"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusVerified, StatusOfferReceived, StatusDealerSelected,
		StatusConverted, StatusRejected, StatusDuplicate, StatusClosed, StatusFollowUp:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusConverted, StatusRejected, StatusDuplicate, StatusClosed:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the lead may still receive offers.
func (s Status) IsOpen() bool {
	return s == StatusVerified || s == StatusOfferReceived
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// transitions is the single source of truth for which status moves are
// legal. Selection (→ DEALER_SELECTED) is driven by the matching engine
// through a conditional update, but is still declared here so the table
// stays complete.
var transitions = map[Status][]Status{
	StatusNew:            {StatusVerified, StatusRejected, StatusDuplicate, StatusClosed},
	StatusVerified:       {StatusOfferReceived, StatusRejected, StatusDuplicate, StatusClosed, StatusFollowUp},
	StatusOfferReceived:  {StatusDealerSelected, StatusClosed, StatusFollowUp},
	StatusDealerSelected: {StatusConverted, StatusClosed, StatusFollowUp},
	StatusFollowUp:       {StatusDealerSelected, StatusConverted, StatusClosed},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
