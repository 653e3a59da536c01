package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// Loader writes a catalog document into the database
type Loader struct {
	db       *gorm.DB
	logger   *zap.Logger
	currency string
	dryRun   bool
}

// Result counts what a load changed
type Result struct {
	DestinationsCreated int `json:"destinations_created"`
	DestinationsUpdated int `json:"destinations_updated"`
	PackagesCreated     int `json:"packages_created"`
	PackagesUpdated     int `json:"packages_updated"`
}

func (r Result) String() string {
	return fmt.Sprintf("destinations: %d created, %d updated; packages: %d created, %d updated",
		r.DestinationsCreated, r.DestinationsUpdated, r.PackagesCreated, r.PackagesUpdated)
}

var errDryRun = errors.New("dry run rollback")

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{
		db:       db,
		logger:   zap.NewNop(),
		currency: DefaultCurrency,
	}
}

// WithLogger sets the logger used to report each upserted record
func (l *Loader) WithLogger(logger *zap.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// WithCurrency sets the currency for packages that do not name one
func (l *Loader) WithCurrency(currency string) *Loader {
	if currency != "" {
		l.currency = currency
	}
	return l
}

// WithDryRun validates and applies the document inside a transaction that is always rolled back
func (l *Loader) WithDryRun(dryRun bool) *Loader {
	l.dryRun = dryRun
	return l
}

// LoadFromReader parses and loads a catalog document
func (l *Loader) LoadFromReader(ctx context.Context, r io.Reader) (*Result, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, doc)
}

// Load upserts destinations and then their packages by slug in a single transaction.
// Records missing from the document are left untouched.
func (l *Loader) Load(ctx context.Context, doc *Document) (*Result, error) {
	result := &Result{}

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, spec := range doc.Destinations {
			dest := spec.Destination()
			created, err := upsertDestination(tx, &dest)
			if err != nil {
				return fmt.Errorf("destination %q: %w", spec.Slug, err)
			}
			if created {
				result.DestinationsCreated++
			} else {
				result.DestinationsUpdated++
			}
			l.logger.Debug("catalog destination loaded", zap.String("slug", dest.Slug), zap.Bool("created", created))

			for _, ps := range spec.Packages {
				pkg := ps.Package(dest.ID, l.currency)
				created, err := upsertPackage(tx, &pkg)
				if err != nil {
					return fmt.Errorf("package %q: %w", ps.Slug, err)
				}
				if created {
					result.PackagesCreated++
				} else {
					result.PackagesUpdated++
				}
				l.logger.Debug("catalog package loaded", zap.String("slug", pkg.Slug), zap.Bool("created", created))
			}
		}

		if l.dryRun {
			return errDryRun
		}
		return nil
	})

	if errors.Is(err, errDryRun) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func upsertDestination(tx *gorm.DB, dest *model.Destination) (bool, error) {
	var existing model.Destination
	err := tx.Where("slug = ?", dest.Slug).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, tx.Omit("Packages").Create(dest).Error
	}
	if err != nil {
		return false, err
	}

	dest.ID = existing.ID
	dest.CreatedAt = existing.CreatedAt
	return false, tx.Model(&existing).Select(
		"name", "region", "country", "summary", "description", "hero_image_url", "featured", "updated_at",
	).Updates(dest).Error
}

func upsertPackage(tx *gorm.DB, pkg *model.Package) (bool, error) {
	var existing model.Package
	err := tx.Where("slug = ?", pkg.Slug).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, tx.Omit("Destination").Create(pkg).Error
	}
	if err != nil {
		return false, err
	}

	pkg.ID = existing.ID
	return false, tx.Model(&existing).Select(
		"destination_id", "title", "summary", "description", "duration_days",
		"price_minor", "currency", "highlights", "active", "updated_at",
	).Updates(pkg).Error
}
