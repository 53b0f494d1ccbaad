package ports

import (
	"context"

	"rental/internal/core/domain/model/client"
)

// ClientRepository reads clients owned by the client registry.
type ClientRepository interface {
	Get(ctx context.Context, id int64) (client.Client, error)
	// GetForUpdate loads the client and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (client.Client, error)
}
