// Package client holds the read model of a renting client.
package client

import (
	"errors"
	"fmt"
	"strings"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"
	"rental/internal/pkg/guard"
)

var ErrClientIsNotConstructed = errors.New("Client must be created via RestoreClient")

type Client struct {
	id       int64
	name     string
	cpf      string
	email    string
	activity kernel.Activity
	guard    guard.ConstructorGuard
}

func RestoreClient(id int64, name, cpf, email string, activity kernel.Activity) (Client, error) {
	var errID, errCPF error
	if id <= 0 {
		errID = errs.NewValueIsInvalidErrorWithCause("clientId", fmt.Errorf("%d is not positive", id))
	}
	if strings.TrimSpace(cpf) == "" {
		errCPF = errs.NewValueIsRequiredError("cpf")
	}
	if err := errors.Join(errID, errCPF, activity.Validate()); err != nil {
		return Client{}, err
	}

	return Client{
		id:       id,
		name:     name,
		cpf:      cpf,
		email:    email,
		activity: activity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c Client) ID() int64                 { return c.id }
func (c Client) Name() string              { return c.name }
func (c Client) CPF() string               { return c.cpf }
func (c Client) Email() string             { return c.email }
func (c Client) Activity() kernel.Activity { return c.activity }

func (c Client) IsActive() bool {
	return c.activity.IsActive()
}

func (c Client) Validate() error {
	return c.guard.Validate(ErrClientIsNotConstructed)
}
