package queries

import (
	"errors"
	"time"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var (
	ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
		"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
	)
)

// GetOverdueOrdersQuery finds approved orders whose end date passed before
// the reference instant and that nobody has closed yet.
type GetOverdueOrdersQuery struct {
	asOf  time.Time
	guard guard.ConstructorGuard
}

func NewGetOverdueOrdersQuery(asOf time.Time) (GetOverdueOrdersQuery, error) {
	if asOf.IsZero() {
		return GetOverdueOrdersQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	return GetOverdueOrdersQuery{asOf: asOf.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}
