package ports

import (
	"context"

	"rental/internal/core/domain/model/kernel"
)

// AddressLookup resolves a postal code to its region, city and fee coefficient.
//
// Every failure is reported as errs.AddressResolutionError. Its cause is
// errs.ErrUnknownPostalCode when the upstream does not know the code and
// errs.ErrAddressLookupTimeout when the call timed out.
type AddressLookup interface {
	Resolve(ctx context.Context, postalCode kernel.PostalCode) (kernel.Address, error)
}
