// Package store defines the storage interfaces used by the tripdesk server.
//
// Endpoints and services depend on these interfaces rather than on GORM so
// they can be tested with mocks. The GORM implementations live in the gorm
// subpackage.
//
// # Available Stores
//
//   - UsersStore: accounts and linked OAuth identities
//   - CatalogStore: destinations and tour packages
//   - BlogStore: blog posts
//   - LeadsStore: contact leads and newsletter subscribers
//   - OrdersStore: orders, payments and bookings
//   - HealthStore: database connectivity
//
// # Errors
//
// Implementations translate driver errors into ErrNotFound, ErrConflict and
// ErrHasDependents so callers can use errors.Is:
//
//	pkg, err := catalog.GetPackageBySlug(ctx, "kerala-houseboat")
//	if errors.Is(err, store.ErrNotFound) {
//	    // 404
//	}
package store
