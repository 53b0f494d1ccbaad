package order

import (
	"fmt"
	"strings"

	"rental/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Open ──┬──> Approved ──> Closed
//	       │
//	       └──> Cancelled
//
// Closed and Cancelled are terminal. A transition to the current status or
// back to Open is illegal, and only one step is taken per request.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Open
	Approved
	Closed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Open:      "open",
		Approved:  "approved",
		Closed:    "closed",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:      "open",
		Approved:  "approved",
		Closed:    "closed",
		Cancelled: "cancelled",
	}
}

// ParseStatus maps the wire/persistence name of a status back to its value.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside the enum.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case name used on the wire and in storage.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Closed || s == Cancelled
}

// Blocking reports whether an order in this status holds its car.
func (s Status) Blocking() bool {
	return s == Open || s == Approved
}

// Approve transitions Open -> Approved.
func (s Status) Approve() (Status, error) {
	if s != Open {
		return Unknown, errs.NewIllegalTransitionError(s.String(), Approved.String())
	}
	return Approved, nil
}

// Cancel transitions Open -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Open {
		return Unknown, errs.NewIllegalTransitionError(s.String(), Cancelled.String())
	}
	return Cancelled, nil
}

// Close transitions Approved -> Closed.
func (s Status) Close() (Status, error) {
	if s != Approved {
		return Unknown, errs.NewIllegalTransitionError(s.String(), Closed.String())
	}
	return Closed, nil
}

// TransitionTo applies the single step leading to target.
func (s Status) TransitionTo(target Status) (Status, error) {
	switch target {
	case Approved:
		return s.Approve()
	case Cancelled:
		return s.Cancel()
	case Closed:
		return s.Close()
	case Open, Unknown:
		return Unknown, errs.NewIllegalTransitionError(s.String(), target.String())
	default:
		return Unknown, target.Validate()
	}
}
