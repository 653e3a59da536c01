package flights

// Result is the normalised response returned to API clients
type Result struct {
	Offers []Offer `json:"offers"`
	Count  int     `json:"count"`
	Cached bool    `json:"cached"`
}

type Offer struct {
	ID                string      `json:"id"`
	Price             Price       `json:"price"`
	Seats             int         `json:"seats"`
	ValidatingCarrier string      `json:"validating_carrier"`
	Itineraries       []Itinerary `json:"itineraries"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Carrier     string `json:"carrier"`
	CarrierCode string `json:"carrier_code"`
	Number      string `json:"number"`
	Duration    string `json:"duration"`
	Stops       int    `json:"stops"`
}

// upstream wire format of GET /v2/shopping/flight-offers
type offersResponse struct {
	Data []struct {
		ID                     string   `json:"id"`
		NumberOfBookableSeats  int      `json:"numberOfBookableSeats"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
		Price                  struct {
			Currency   string `json:"currency"`
			Total      string `json:"total"`
			GrandTotal string `json:"grandTotal"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure     endpoint `json:"departure"`
				Arrival       endpoint `json:"arrival"`
				CarrierCode   string   `json:"carrierCode"`
				Number        string   `json:"number"`
				Duration      string   `json:"duration"`
				NumberOfStops int      `json:"numberOfStops"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

type endpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func (e errorResponse) message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	if e.Errors[0].Detail != "" {
		return e.Errors[0].Detail
	}
	return e.Errors[0].Title
}

func normalise(resp offersResponse) *Result {
	carrier := func(code string) string {
		if name, ok := resp.Dictionaries.Carriers[code]; ok && name != "" {
			return name
		}
		return code
	}

	out := &Result{Offers: make([]Offer, 0, len(resp.Data))}
	for _, d := range resp.Data {
		offer := Offer{
			ID:    d.ID,
			Seats: d.NumberOfBookableSeats,
			Price: Price{Total: d.Price.GrandTotal, Currency: d.Price.Currency},
		}
		if offer.Price.Total == "" {
			offer.Price.Total = d.Price.Total
		}
		if len(d.ValidatingAirlineCodes) > 0 {
			offer.ValidatingCarrier = carrier(d.ValidatingAirlineCodes[0])
		}
		for _, it := range d.Itineraries {
			itin := Itinerary{Duration: it.Duration, Segments: make([]Segment, 0, len(it.Segments))}
			for _, s := range it.Segments {
				itin.Segments = append(itin.Segments, Segment{
					From:        s.Departure.IATACode,
					To:          s.Arrival.IATACode,
					Departure:   s.Departure.At,
					Arrival:     s.Arrival.At,
					Carrier:     carrier(s.CarrierCode),
					CarrierCode: s.CarrierCode,
					Number:      s.Number,
					Duration:    s.Duration,
					Stops:       s.NumberOfStops,
				})
			}
			offer.Itineraries = append(offer.Itineraries, itin)
		}
		out.Offers = append(out.Offers, offer)
	}
	out.Count = len(out.Offers)
	return out
}
