package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// DefaultCurrency is used for packages that do not name one
const DefaultCurrency = "INR"

var ErrEmptyDocument = errors.New("catalog document has no destinations")

// Document is the top level of a catalog YAML file
type Document struct {
	Destinations []DestinationSpec `yaml:"destinations"`
}

type DestinationSpec struct {
	Slug         string        `yaml:"slug"`
	Name         string        `yaml:"name"`
	Region       string        `yaml:"region"`
	Country      string        `yaml:"country"`
	Summary      string        `yaml:"summary"`
	Description  string        `yaml:"description"`
	HeroImageURL string        `yaml:"hero_image_url"`
	Featured     bool          `yaml:"featured"`
	Packages     []PackageSpec `yaml:"packages"`
}

type PackageSpec struct {
	Slug         string   `yaml:"slug"`
	Title        string   `yaml:"title"`
	Summary      string   `yaml:"summary"`
	Description  string   `yaml:"description"`
	DurationDays int      `yaml:"duration_days"`
	Price        float64  `yaml:"price"`
	Currency     string   `yaml:"currency"`
	Highlights   []string `yaml:"highlights"`
	// Active defaults to true when omitted
	Active *bool `yaml:"active"`
}

// Parse reads a catalog document and checks it before anything touches the database.
// Problems are reported together as validation.Errors keyed by their YAML path.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Destinations) == 0 {
		return nil, ErrEmptyDocument
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks slugs, names, prices and durations across the whole document
func (d *Document) Validate() error {
	errs := validation.Errors{}
	destSlugs := map[string]bool{}
	pkgSlugs := map[string]bool{}

	for i, dest := range d.Destinations {
		path := fmt.Sprintf("destinations[%d]", i)
		checkSlug(errs, path, dest.Slug, destSlugs)
		if strings.TrimSpace(dest.Name) == "" {
			errs.Add(path+".name", "is required")
		}

		for j, p := range dest.Packages {
			ppath := fmt.Sprintf("%s.packages[%d]", path, j)
			checkSlug(errs, ppath, p.Slug, pkgSlugs)
			if strings.TrimSpace(p.Title) == "" {
				errs.Add(ppath+".title", "is required")
			}
			if p.Price <= 0 || model.ToMinor(p.Price) <= 0 {
				errs.Add(ppath+".price", "must be greater than 0")
			}
			if p.DurationDays < 1 || p.DurationDays > 60 {
				errs.Add(ppath+".duration_days", "must be between 1 and 60")
			}
			if p.Currency != "" && len(p.Currency) != 3 {
				errs.Add(ppath+".currency", "must be a 3 letter ISO code")
			}
		}
	}
	return errs.Err()
}

func checkSlug(errs validation.Errors, path, slug string, seen map[string]bool) {
	switch {
	case slug == "":
		errs.Add(path+".slug", "is required")
	case !validation.SlugPattern.MatchString(slug):
		errs.Add(path+".slug", "must be lowercase words separated by dashes")
	case seen[slug]:
		errs.Add(path+".slug", fmt.Sprintf("duplicate slug %q", slug))
	}
	seen[slug] = true
}

// Destination converts the spec into a model, leaving ID and Packages unset
func (s DestinationSpec) Destination() model.Destination {
	return model.Destination{
		Slug:         s.Slug,
		Name:         strings.TrimSpace(s.Name),
		Region:       s.Region,
		Country:      s.Country,
		Summary:      s.Summary,
		Description:  s.Description,
		HeroImageURL: s.HeroImageURL,
		Featured:     s.Featured,
	}
}

// Package converts the spec into a model for the given destination
func (s PackageSpec) Package(destinationID uint, defaultCurrency string) model.Package {
	currency := strings.ToUpper(s.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	return model.Package{
		Slug:          s.Slug,
		DestinationID: destinationID,
		Title:         strings.TrimSpace(s.Title),
		Summary:       s.Summary,
		Description:   s.Description,
		DurationDays:  s.DurationDays,
		PriceMinor:    model.ToMinor(s.Price),
		Currency:      currency,
		Highlights:    s.Highlights,
		Active:        active,
	}
}
