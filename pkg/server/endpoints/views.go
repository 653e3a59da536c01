package endpoints

import (
	"github.com/tripdesk/tripdesk/pkg/content"
	"github.com/tripdesk/tripdesk/pkg/model"
)

// API representations. Amounts leave the API in major units with two decimals.

type packageView struct {
	*model.Package
	Price           string `json:"price"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

func newPackageView(p *model.Package, withHTML bool) packageView {
	v := packageView{Package: p, Price: model.FormatMinor(p.PriceMinor)}
	if withHTML {
		v.DescriptionHTML, _ = content.Render(p.Description)
	}
	return v
}

func packageViews(pkgs []model.Package) []packageView {
	out := make([]packageView, 0, len(pkgs))
	for i := range pkgs {
		out = append(out, newPackageView(&pkgs[i], false))
	}
	return out
}

type destinationView struct {
	*model.Destination
	DescriptionHTML string        `json:"description_html,omitempty"`
	Packages        []packageView `json:"packages,omitempty"`
}

func newDestinationView(d *model.Destination, withHTML bool) destinationView {
	v := destinationView{Destination: d}
	if withHTML {
		v.DescriptionHTML, _ = content.Render(d.Description)
	}
	if len(d.Packages) > 0 {
		v.Packages = packageViews(d.Packages)
	}
	return v
}

func destinationViews(dests []model.Destination) []destinationView {
	out := make([]destinationView, 0, len(dests))
	for i := range dests {
		out = append(out, newDestinationView(&dests[i], false))
	}
	return out
}

type orderView struct {
	*model.Order
	Amount  string       `json:"amount"`
	Package *packageView `json:"package,omitempty"`
}

func newOrderView(o *model.Order) orderView {
	v := orderView{Order: o, Amount: model.FormatMinor(o.AmountMinor)}
	if o.Package != nil {
		pv := newPackageView(o.Package, false)
		v.Package = &pv
	}
	return v
}

func orderViews(orders []model.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderView(&orders[i]))
	}
	return out
}

type snapshotView struct {
	PackageSlug     string `json:"package_slug"`
	PackageTitle    string `json:"package_title"`
	DestinationName string `json:"destination_name"`
	DurationDays    int    `json:"duration_days"`
	UnitPrice       string `json:"unit_price"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
}

type bookingView struct {
	*model.Booking
	Snapshot snapshotView `json:"snapshot"`
}

func newBookingView(b *model.Booking) bookingView {
	s := b.Snapshot.Data()
	return bookingView{
		Booking: b,
		Snapshot: snapshotView{
			PackageSlug:     s.PackageSlug,
			PackageTitle:    s.PackageTitle,
			DestinationName: s.DestinationName,
			DurationDays:    s.DurationDays,
			UnitPrice:       model.FormatMinor(s.UnitPriceMinor),
			Amount:          model.FormatMinor(s.AmountMinor),
			Currency:        s.Currency,
		},
	}
}

func bookingViews(bookings []model.Booking) []bookingView {
	out := make([]bookingView, 0, len(bookings))
	for i := range bookings {
		out = append(out, newBookingView(&bookings[i]))
	}
	return out
}
