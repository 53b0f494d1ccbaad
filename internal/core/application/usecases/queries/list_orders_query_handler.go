package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the requested page ordered by creation time. Total counts
// every order matching the filters, not just the returned page.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersResponse{}, err
	}

	resp := ListOrdersResponse{
		Orders: make([]OrderResponse, 0),
		Page:   query.Page(),
		Limit:  query.Limit(),
	}

	if err := h.filtered(ctx, query).Count(&resp.Total).Error; err != nil {
		return ListOrdersResponse{}, err
	}
	if resp.Total == 0 {
		return resp, nil
	}

	rows, err := h.filtered(ctx, query).
		Select(orderColumns).
		Order("o.created_at, o.id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Rows()
	if err != nil {
		return ListOrdersResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		o, scanErr := scanOrder(rows)
		if scanErr != nil {
			return ListOrdersResponse{}, scanErr
		}
		resp.Orders = append(resp.Orders, o)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersResponse{}, err
	}

	return resp, nil
}

func (h ListOrdersQueryHandler) filtered(ctx context.Context, query ListOrdersQuery) *gorm.DB {
	tx := h.db.WithContext(ctx).Table("orders AS o")
	if cpf := query.CPF(); cpf != "" {
		tx = tx.Joins("JOIN clients c ON c.id = o.client_id").Where("c.cpf = ?", cpf)
	}
	if status, ok := query.Status(); ok {
		tx = tx.Where("o.status = ?", status.String())
	}
	return tx
}
