// Package booking implements the order and payment flow.
//
// A customer creates an order for a package and travel date. The service
// derives the amount from the stored package price, creates a gateway order
// and returns the checkout payload for the payment widget. After payment the
// widget's signature is verified (or a signed webhook arrives), and the
// payment, the paid order and the booking are written in one transaction.
//
// A pending order for the same user, package and date created within the
// duplicate window is returned instead of creating a second gateway order.
// Settling an order is idempotent: whichever of verification and webhook
// arrives second sees the existing booking.
package booking
