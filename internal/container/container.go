package container

import (
	"go.uber.org/zap"

	"github.com/codeamanwal/brysk/internal/bills"
	"github.com/codeamanwal/brysk/internal/database"
	"github.com/codeamanwal/brysk/internal/discrepancy"
	"github.com/codeamanwal/brysk/internal/inventory"
	"github.com/codeamanwal/brysk/internal/ledger"
	"github.com/codeamanwal/brysk/internal/refdata"
	"github.com/codeamanwal/brysk/internal/repository"
	"github.com/codeamanwal/brysk/internal/sales"
)

type Container struct {
	Repository         *repository.Repository
	ReferenceHandler   *refdata.Handler
	SalesHandler       *sales.Handler
	BillsHandler       *bills.Handler
	InventoryHandler   *inventory.Handler
	DiscrepancyHandler *discrepancy.Handler
}

func NewAppContainer(sources *database.Sources, log *zap.Logger) *Container {
	repo := repository.NewRepository(sources)
	refRepo := refdata.NewRepository(repo)
	salesRepo := sales.NewRepository(repo)
	billsRepo := bills.NewRepository(repo)
	ledgerRepo := ledger.NewRepository(repo)
	discrepancyRepo := discrepancy.NewRepository(repo)

	return &Container{
		Repository:         repo,
		ReferenceHandler:   refdata.NewHandler(refRepo, log),
		SalesHandler:       sales.NewHandler(salesRepo, refRepo, log),
		BillsHandler:       bills.NewHandler(billsRepo, refRepo, log),
		InventoryHandler:   inventory.NewHandler(ledgerRepo, salesRepo, refRepo, log),
		DiscrepancyHandler: discrepancy.NewHandler(discrepancyRepo, refRepo, log),
	}
}
