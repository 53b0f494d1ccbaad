package queries

import (
	"errors"
	"strings"

	"rental/internal/core/domain/model/order"
	"rental/internal/pkg/guard"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery pages through orders, optionally filtered by the client's
// CPF and by status.
//
// Example:
//
//	query, err := NewListOrdersQuery("123.456.789-09", "open", 2, 20)
//	page, err := NewListOrdersQueryHandler(db).Handle(ctx, query)
type ListOrdersQuery struct {
	cpf    string
	status order.Status
	page   int
	limit  int
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery applies the paging defaults: a page or limit below 1
// falls back to DefaultPage or DefaultLimit, and limit is capped at MaxLimit.
// An empty status means "any status".
func NewListOrdersQuery(cpf, status string, page, limit int) (ListOrdersQuery, error) {
	q := ListOrdersQuery{
		cpf:   strings.TrimSpace(cpf),
		page:  page,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}

	if status = strings.TrimSpace(status); status != "" {
		s, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = s
	}

	if q.page < 1 {
		q.page = DefaultPage
	}
	if q.limit < 1 {
		q.limit = DefaultLimit
	}
	if q.limit > MaxLimit {
		q.limit = MaxLimit
	}

	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) CPF() string {
	return q.cpf
}

// Status returns false when the query is not filtered by status.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.status != order.Unknown
}

func (q ListOrdersQuery) Page() int {
	return q.page
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.limit
}

// ListOrdersResponse is one page of orders together with paging metadata.
type ListOrdersResponse struct {
	Orders []OrderResponse
	Total  int64
	Page   int
	Limit  int
}
