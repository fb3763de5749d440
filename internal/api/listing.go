package api

import "encoding/json"

// NotAvailable replaces any field the upstream document leaves out.
const NotAvailable = "N/A"

// Listing is one active item from GetMyeBaySelling.
type Listing struct {
	ItemID     string      `json:"ItemID"`
	Title      string      `json:"Title"`
	Price      string      `json:"Price"`
	Quantity   string      `json:"Quantity"`
	Variations []Variation `json:"Variations"`
}

// Variation is a size/colour/etc. variant of a listing.
type Variation struct {
	Price     string     `json:"Price"`
	Quantity  string     `json:"Quantity"`
	Title     string     `json:"Title"`
	Specifics []Specific `json:"Specifics"`
}

// Specific is a single name/value attribute of a variation.
// It serializes as a one-entry object: {"Color": "Red"}.
type Specific struct {
	Name  string
	Value string
}

func (s Specific) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{s.Name: s.Value})
}
