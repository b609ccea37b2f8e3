package refdata

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"golang.org/x/sync/errgroup"

	"github.com/codeamanwal/brysk/internal/repository"
	"github.com/codeamanwal/brysk/pkg/enrich"
	custom_error "github.com/codeamanwal/brysk/pkg/errors"
	"github.com/codeamanwal/brysk/pkg/lookup"
	"github.com/codeamanwal/brysk/pkg/models"
)

// Repository loads the slowly-changing lookup sets every report enriches
// with. Each method issues exactly one query and returns a key->record
// table for O(1) lookups; results are request-scoped and never cached.
type Repository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{repository: r}
}

func (r *Repository) LocationList(ctx context.Context) ([]models.LocationRef, error) {
	var refs []models.LocationRef
	query := r.repository.Admin.
		From(goqu.T("Locations").As("l")).
		Select(
			goqu.I("l.id").As("id"),
			goqu.I("l.displayName").As("display_name"),
			goqu.I("l.cityId").As("city_id"),
			goqu.I("c.name").As("city_name"),
		).
		Join(goqu.T("Cities").As("c"), goqu.On(goqu.Ex{"l.cityId": goqu.I("c.id")}))

	if err := query.Executor().ScanStructsContext(ctx, &refs); err != nil {
		return nil, custom_error.WrapUpstream("admin", err)
	}
	return refs, nil
}

func (r *Repository) Locations(ctx context.Context) (lookup.Table[string, models.LocationRef], error) {
	refs, err := r.LocationList(ctx)
	if err != nil {
		return nil, err
	}
	return lookup.Index(refs, func(ref models.LocationRef) string { return ref.ID }), nil
}

func (r *Repository) Variants(ctx context.Context) (lookup.Table[string, models.VariantRef], error) {
	var refs []models.VariantRef
	query := r.repository.Admin.
		From(goqu.T("Variants").As("v")).
		Select(
			goqu.I("v.id").As("id"),
			goqu.I("v.title").As("title"),
			goqu.I("v.productId").As("product_id"),
			goqu.I("p.name").As("product_name"),
			// unitWeight is nullable upstream; a missing weight must not
			// break sensor-quantity derivation downstream.
			goqu.COALESCE(goqu.I("v.unitWeight"), 0).As("unit_weight"),
		).
		Join(goqu.T("Products").As("p"), goqu.On(goqu.Ex{"v.productId": goqu.I("p.id")}))

	if err := query.Executor().ScanStructsContext(ctx, &refs); err != nil {
		return nil, custom_error.WrapUpstream("admin", err)
	}
	return lookup.Index(refs, func(ref models.VariantRef) string { return ref.ID }), nil
}

func (r *Repository) Users(ctx context.Context) (lookup.Table[string, models.UserRef], error) {
	var refs []models.UserRef
	query := r.repository.Customer.
		From(goqu.T("Users")).
		Select(
			goqu.C("id").As("id"),
			goqu.C("name").As("name"),
			goqu.C("phoneNumber").As("phone_number"),
		)

	if err := query.Executor().ScanStructsContext(ctx, &refs); err != nil {
		return nil, custom_error.WrapUpstream("customer", err)
	}
	return lookup.Index(refs, func(ref models.UserRef) string { return ref.ID }), nil
}

func (r *Repository) Cities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	query := r.repository.Admin.
		From(goqu.T("Cities")).
		Select(goqu.C("id"), goqu.C("name"))

	if err := query.Executor().ScanStructsContext(ctx, &cities); err != nil {
		return nil, custom_error.WrapUpstream("admin", err)
	}
	return cities, nil
}

// The bundle loaders below fan the individual lookups out concurrently and
// fail the whole load on the first error: enrichment never runs against a
// partial reference set.

func (r *Repository) LocationRefs(ctx context.Context) (enrich.Refs, error) {
	locations, err := r.Locations(ctx)
	if err != nil {
		return enrich.Refs{}, err
	}
	return enrich.Refs{Locations: locations}, nil
}

func (r *Repository) LocationVariantRefs(ctx context.Context) (enrich.Refs, error) {
	var refs enrich.Refs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		refs.Locations, err = r.Locations(ctx)
		return err
	})
	g.Go(func() (err error) {
		refs.Variants, err = r.Variants(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return enrich.Refs{}, err
	}
	return refs, nil
}

func (r *Repository) UserVariantRefs(ctx context.Context) (enrich.Refs, error) {
	var refs enrich.Refs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		refs.Users, err = r.Users(ctx)
		return err
	})
	g.Go(func() (err error) {
		refs.Variants, err = r.Variants(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return enrich.Refs{}, err
	}
	return refs, nil
}

func (r *Repository) CustomerRefs(ctx context.Context) (enrich.Refs, error) {
	var refs enrich.Refs
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		refs.Users, err = r.Users(ctx)
		return err
	})
	g.Go(func() (err error) {
		refs.Locations, err = r.Locations(ctx)
		return err
	})
	g.Go(func() (err error) {
		refs.Variants, err = r.Variants(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return enrich.Refs{}, err
	}
	return refs, nil
}
