package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tripdesk/tripdesk/pkg/validation"
)

const sampleCatalog = `
destinations:
  - slug: kerala
    name: Kerala
    region: South India
    country: India
    featured: true
    packages:
      - slug: kerala-backwaters
        title: Kerala Backwaters
        duration_days: 5
        price: 24999.50
        highlights: [Houseboat, Munnar]
      - slug: kerala-ayurveda
        title: Ayurveda Retreat
        duration_days: 7
        price: 41000
        currency: usd
        active: false
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, doc.Destinations, 1)

	dest := doc.Destinations[0]
	assert.Equal(t, "kerala", dest.Slug)
	assert.True(t, dest.Featured)
	require.Len(t, dest.Packages, 2)

	pkg := dest.Packages[0].Package(3, "INR")
	assert.Equal(t, uint(3), pkg.DestinationID)
	assert.Equal(t, int64(2499950), pkg.PriceMinor)
	assert.Equal(t, "INR", pkg.Currency)
	assert.True(t, pkg.Active)
	assert.Equal(t, []string{"Houseboat", "Munnar"}, []string(pkg.Highlights))

	retreat := dest.Packages[1].Package(3, "INR")
	assert.Equal(t, "USD", retreat.Currency)
	assert.False(t, retreat.Active)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			name:  "duplicate destination slug",
			input: "destinations:\n  - {slug: goa, name: Goa}\n  - {slug: goa, name: Goa Again}\n",
			field: "destinations[1].slug",
		},
		{
			name:  "bad slug",
			input: "destinations:\n  - {slug: Goa Beach, name: Goa}\n",
			field: "destinations[0].slug",
		},
		{
			name: "zero price",
			input: `destinations:
  - slug: goa
    name: Goa
    packages:
      - {slug: goa-beach, title: Beach, duration_days: 3, price: 0}
`,
			field: "destinations[0].packages[0].price",
		},
		{
			name: "duration out of range",
			input: `destinations:
  - slug: goa
    name: Goa
    packages:
      - {slug: goa-beach, title: Beach, duration_days: 0, price: 100}
`,
			field: "destinations[0].packages[0].duration_days",
		},
		{
			name: "duplicate package slug across destinations",
			input: `destinations:
  - slug: goa
    name: Goa
    packages:
      - {slug: beach, title: Beach, duration_days: 3, price: 100}
  - slug: kerala
    name: Kerala
    packages:
      - {slug: beach, title: Beach, duration_days: 3, price: 100}
`,
			field: "destinations[1].packages[0].slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			fields, ok := validation.AsErrors(err)
			require.True(t, ok, "expected validation errors, got %v", err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestParseRejectsEmptyAndUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse(strings.NewReader("destinations: []\n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse(strings.NewReader("destinations:\n  - {slug: goa, name: Goa, colour: blue}\n"))
	assert.Error(t, err)
}

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func TestLoaderLoad(t *testing.T) {
	db, mock := setupTestDB(t)

	doc, err := Parse(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	mock.ExpectBegin()
	// destination exists
	mock.ExpectQuery(`SELECT \* FROM "destinations" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name"}).AddRow(3, "kerala", "Old Kerala"))
	mock.ExpectExec(`UPDATE "destinations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	// first package is new
	mock.ExpectQuery(`SELECT \* FROM "packages" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	// second package exists
	mock.ExpectQuery(`SELECT \* FROM "packages" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(12, "kerala-ayurveda"))
	mock.ExpectExec(`UPDATE "packages" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := NewLoader(db).Load(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, Result{DestinationsUpdated: 1, PackagesCreated: 1, PackagesUpdated: 1}, *res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoaderDryRunRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)

	doc := &Document{Destinations: []DestinationSpec{{Slug: "goa", Name: "Goa"}}}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "destinations" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "destinations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	res, err := NewLoader(db).WithDryRun(true).Load(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DestinationsCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoaderLoadFailureRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)

	doc := &Document{Destinations: []DestinationSpec{{Slug: "goa", Name: "Goa"}}}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "destinations" WHERE slug = \$1`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := NewLoader(db).Load(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `destination "goa"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
