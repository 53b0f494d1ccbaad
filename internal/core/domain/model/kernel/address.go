package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var (
	ErrPostalCodeIsNotConstructed = errors.New("PostalCode must be created via NewPostalCode")
	ErrAddressIsNotConstructed    = errors.New("Address must be created via NewAddress")
)

var postalCodePattern = regexp.MustCompile(`^\d{5}-\d{3}$`)

// PostalCode is a Brazilian CEP in the XXXXX-XXX form.
type PostalCode struct {
	value string
	guard guard.ConstructorGuard
}

func NewPostalCode(value string) (PostalCode, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return PostalCode{}, errs.NewValueIsRequiredError("postalCode")
	}
	if !postalCodePattern.MatchString(value) {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause(
			"postalCode",
			fmt.Errorf("%q does not match XXXXX-XXX", value),
		)
	}
	return PostalCode{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (p PostalCode) String() string {
	return p.value
}

// Digits returns the eight digits without the hyphen.
func (p PostalCode) Digits() string {
	return strings.ReplaceAll(p.value, "-", "")
}

func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.value == other.value
}

func (p PostalCode) Validate() error {
	return p.guard.Validate(ErrPostalCodeIsNotConstructed)
}

// Address is what a postal code resolves to. Coefficient is kept as the raw
// upstream text; turning it into a fee is a pricing concern.
type Address struct {
	postalCode  PostalCode
	region      string
	city        string
	coefficient string
	guard       guard.ConstructorGuard
}

func NewAddress(postalCode PostalCode, region, city, coefficient string) (Address, error) {
	var errRegion, errCity error
	if strings.TrimSpace(region) == "" {
		errRegion = errs.NewValueIsRequiredError("region")
	}
	if strings.TrimSpace(city) == "" {
		errCity = errs.NewValueIsRequiredError("city")
	}
	if err := errors.Join(postalCode.Validate(), errRegion, errCity); err != nil {
		return Address{}, err
	}

	return Address{
		postalCode:  postalCode,
		region:      strings.TrimSpace(region),
		city:        strings.TrimSpace(city),
		coefficient: strings.TrimSpace(coefficient),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (a Address) PostalCode() PostalCode { return a.postalCode }
func (a Address) Region() string         { return a.region }
func (a Address) City() string           { return a.city }
func (a Address) Coefficient() string    { return a.coefficient }

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
