package cmd

import (
	"time"

	"rental/internal/adapters/out/postgres"
	"rental/internal/core/application/usecases/commands"
	"rental/internal/core/application/usecases/queries"
	"rental/internal/core/domain/services"
	"rental/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	addresses  ports.AddressLookup
	clientRule services.ClientRule
	clock      commands.Clock
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, addresses ports.AddressLookup) CompositionRoot {
	clientRule := services.ClientRuleOpenOrApproved
	if cfg.EligibilityLegacyClientRule {
		clientRule = services.ClientRuleOpenOnly
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		addresses:  addresses,
		clientRule: clientRule,
		clock:      time.Now,
	}
}

// Clock is the time source shared by the handlers and the HTTP adapter.
func (c *CompositionRoot) Clock() commands.Clock {
	return c.clock
}

func (c *CompositionRoot) rentalUoWFactory() commands.RentalUoWFactory {
	return FuncRentalUoWFactory(func() commands.RentalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.rentalUoWFactory(), c.addresses, c.clientRule, c.clock)
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() *commands.UpdateOrderCommandHandler {
	h := commands.NewUpdateOrderCommandHandler(c.rentalUoWFactory(), c.addresses, c.clientRule, c.clock)
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(*c.CreateUpdateOrderCommandHandler())
	return &h
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

type FuncRentalUoWFactory func() commands.RentalUoW

func (f FuncRentalUoWFactory) Create() commands.RentalUoW {
	return f()
}
