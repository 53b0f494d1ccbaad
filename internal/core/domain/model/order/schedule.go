package order

import (
	"fmt"
	"time"

	"rental/internal/pkg/errs"
)

// ValidateWindow checks that the rental window is set and endDate does not precede startDate.
func ValidateWindow(startDate, endDate time.Time) error {
	if startDate.IsZero() {
		return errs.NewValueIsRequiredError("startDate")
	}
	if endDate.IsZero() {
		return errs.NewValueIsRequiredError("endDate")
	}
	if endDate.Before(startDate) {
		return errs.NewValueIsInvalidErrorWithCause(
			"endDate",
			fmt.Errorf("end date %s cannot be before start date %s",
				endDate.Format(time.RFC3339), startDate.Format(time.RFC3339)),
		)
	}
	return nil
}

// SubmissionGrace is how far before now a date may fall and still count as
// "now". It absorbs the gap between reading the request and handling it.
const SubmissionGrace = time.Minute

// ValidateNotInPast rejects a date earlier than now, less SubmissionGrace.
func ValidateNotInPast(field string, date, now time.Time) error {
	if date.Before(now.Add(-SubmissionGrace)) {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("the %s cannot be in the past", field))
	}
	return nil
}
