package store

import (
	"context"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// DestinationFilter narrows a destination listing
type DestinationFilter struct {
	Region   string
	Featured *bool
	Query    string
	Page
}

// PackageFilter narrows a package listing. Prices are in minor units.
type PackageFilter struct {
	DestinationSlug string
	MinPrice        *int64
	MaxPrice        *int64
	Query           string
	IncludeInactive bool
	Page
}

// CatalogStore abstracts destination and package storage
type CatalogStore interface {
	ListDestinations(ctx context.Context, f DestinationFilter) ([]model.Destination, int64, error)

	// GetDestinationBySlug returns a destination with its active packages
	GetDestinationBySlug(ctx context.Context, slug string) (*model.Destination, error)

	GetDestination(ctx context.Context, id uint) (*model.Destination, error)
	CreateDestination(ctx context.Context, d *model.Destination) error
	UpdateDestination(ctx context.Context, d *model.Destination) error

	// DeleteDestination returns ErrHasDependents while packages reference it
	DeleteDestination(ctx context.Context, id uint) error

	ListPackages(ctx context.Context, f PackageFilter) ([]model.Package, int64, error)

	// GetPackageBySlug returns an active package with its destination.
	// Inactive packages are reported as ErrNotFound.
	GetPackageBySlug(ctx context.Context, slug string) (*model.Package, error)

	GetPackage(ctx context.Context, id uint) (*model.Package, error)
	CreatePackage(ctx context.Context, p *model.Package) error
	UpdatePackage(ctx context.Context, p *model.Package) error
	DeletePackage(ctx context.Context, id uint) error
}
