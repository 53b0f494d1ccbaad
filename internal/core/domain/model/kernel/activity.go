package kernel

import (
	"errors"
	"time"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrActivityIsNotConstructed = errors.New("Activity must be created via Active, Inactive, or RestoreActivity")

// Activity is the soft-delete state of a record: Active, or Inactive since a
// moment. An inactive state without a timestamp cannot be built.
type Activity struct {
	inactiveSince time.Time
	inactive      bool
	guard         guard.ConstructorGuard
}

func Active() Activity {
	return Activity{guard: guard.NewConstructorGuard()}
}

func Inactive(since time.Time) (Activity, error) {
	if since.IsZero() {
		return Activity{}, errs.NewValueIsRequiredError("inactivatedAt")
	}
	return Activity{inactiveSince: since.UTC(), inactive: true, guard: guard.NewConstructorGuard()}, nil
}

// RestoreActivity rebuilds the state from its persisted boolean/timestamp pair.
// An active flag wins over a stale timestamp; an inactive flag needs one.
func RestoreActivity(active bool, inactivatedAt *time.Time) (Activity, error) {
	if active {
		return Active(), nil
	}
	if inactivatedAt == nil {
		return Activity{}, errs.NewValueIsRequiredError("inactivatedAt")
	}
	return Inactive(*inactivatedAt)
}

func (a Activity) IsActive() bool {
	return !a.inactive
}

// InactiveSince reports when the record was deactivated; ok is false for active records.
func (a Activity) InactiveSince() (since time.Time, ok bool) {
	return a.inactiveSince, a.inactive
}

func (a Activity) Validate() error {
	return a.guard.Validate(ErrActivityIsNotConstructed)
}
