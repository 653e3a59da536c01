package gorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

var _ store.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements store.CatalogStore using GORM
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) ListDestinations(ctx context.Context, f store.DestinationFilter) ([]model.Destination, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Destination{})
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Query != "" {
		pattern := containsPattern(f.Query)
		q = q.Where("name ILIKE ? OR summary ILIKE ?", pattern, pattern)
	}

	var out []model.Destination
	total, err := paginate(q, f.Page, "featured DESC, name ASC", &out)
	return out, total, err
}

func (s *CatalogStore) GetDestinationBySlug(ctx context.Context, slug string) (*model.Destination, error) {
	var d model.Destination
	err := s.db.WithContext(ctx).
		Preload("Packages", func(db *gorm.DB) *gorm.DB {
			return db.Where("active = ?", true).Order("price_minor ASC")
		}).
		Where("slug = ?", slug).
		First(&d).Error
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *CatalogStore) GetDestination(ctx context.Context, id uint) (*model.Destination, error) {
	var d model.Destination
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *CatalogStore) CreateDestination(ctx context.Context, d *model.Destination) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error)
}

func (s *CatalogStore) UpdateDestination(ctx context.Context, d *model.Destination) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error)
}

func (s *CatalogStore) DeleteDestination(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var packages int64
		if err := tx.Model(&model.Package{}).Where("destination_id = ?", id).Count(&packages).Error; err != nil {
			return err
		}
		if packages > 0 {
			return store.ErrHasDependents
		}

		res := tx.Delete(&model.Destination{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *CatalogStore) ListPackages(ctx context.Context, f store.PackageFilter) ([]model.Package, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Package{})
	if !f.IncludeInactive {
		q = q.Where("active = ?", true)
	}
	if f.DestinationSlug != "" {
		q = q.Where("destination_id IN (?)",
			s.db.Model(&model.Destination{}).Select("id").Where("slug = ?", f.DestinationSlug))
	}
	if f.MinPrice != nil {
		q = q.Where("price_minor >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_minor <= ?", *f.MaxPrice)
	}
	if f.Query != "" {
		pattern := containsPattern(f.Query)
		q = q.Where("title ILIKE ? OR summary ILIKE ?", pattern, pattern)
	}

	var out []model.Package
	total, err := paginate(q.Preload("Destination"), f.Page, "price_minor ASC, id ASC", &out)
	return out, total, err
}

func (s *CatalogStore) GetPackageBySlug(ctx context.Context, slug string) (*model.Package, error) {
	var p model.Package
	err := s.db.WithContext(ctx).
		Preload("Destination").
		Where("slug = ? AND active = ?", slug, true).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *CatalogStore) GetPackage(ctx context.Context, id uint) (*model.Package, error) {
	var p model.Package
	if err := s.db.WithContext(ctx).Preload("Destination").First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *CatalogStore) CreatePackage(ctx context.Context, p *model.Package) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (s *CatalogStore) UpdatePackage(ctx context.Context, p *model.Package) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (s *CatalogStore) DeletePackage(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Package{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
