package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/codeamanwal/brysk/internal/database"
)

// Repository is the shared base every feature repository embeds. It wraps
// each upstream database with a goqu query builder; feature repositories
// never open their own connections.
type Repository struct {
	Sources  *database.Sources
	Admin    *goqu.Database
	Customer *goqu.Database
	IMS      *goqu.Database
	Machine  *goqu.Database
}

func NewRepository(sources *database.Sources) *Repository {
	return &Repository{
		Sources:  sources,
		Admin:    goqu.New("postgres", sources.Admin),
		Customer: goqu.New("postgres", sources.Customer),
		IMS:      goqu.New("postgres", sources.IMS),
		Machine:  goqu.New("postgres", sources.Machine),
	}
}
