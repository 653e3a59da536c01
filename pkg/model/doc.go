// Package model defines the GORM models for the tripdesk database.
//
// # Models
//
//   - User: customer and admin accounts, password or OAuth backed
//   - Destination, Package: the travel catalog
//   - BlogPost: markdown articles with a publication state
//   - Lead, Subscriber: enquiries from the contact form and newsletter sign-ups
//   - Order, Payment, Booking: the checkout flow from order to confirmed trip
//
// Money is stored in minor units (paise) as int64. FormatMinor and ParseMajor
// convert to and from the decimal strings used on the API.
//
// Enumerations are generated with enumer and persisted as their snake_case
// names, so the text columns stay readable in psql.
package model
