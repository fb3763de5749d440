package api

// Ack values reported in the Trading API response envelope.
const (
	AckFailure        = "Failure"
	AckPartialFailure = "PartialFailure"
)

// UpstreamMessage is one entry of the envelope's Errors list.
type UpstreamMessage struct {
	ShortMessage string
	LongMessage  string
	ErrorCode    string
	Severity     string
}

// SellingResponse is the mapped GetMyeBaySelling response.
type SellingResponse struct {
	Ack      string
	Errors   []UpstreamMessage
	Listings []Listing
}

// Failed reports whether the upstream flagged the call as failed despite a 200 status.
func (r *SellingResponse) Failed() bool {
	return r.Ack == AckFailure || r.Ack == AckPartialFailure
}

// ParseSellingResponse maps the whole envelope: ack, errors and listings in document order.
func ParseSellingResponse(body []byte) (*SellingResponse, error) {
	root, err := parseTree(body)
	if err != nil {
		return nil, err
	}

	resp := &SellingResponse{
		Listings: make([]Listing, 0),
	}
	if ack := root.child("Ack"); ack != nil {
		resp.Ack = ack.text
	}
	for _, e := range root.childrenNamed("Errors") {
		resp.Errors = append(resp.Errors, UpstreamMessage{
			ShortMessage: textOrNA(e.child("ShortMessage")),
			LongMessage:  textOrNA(e.child("LongMessage")),
			ErrorCode:    textOrNA(e.child("ErrorCode")),
			Severity:     textOrNA(e.child("SeverityCode")),
		})
	}

	for _, item := range root.descendants("Item") {
		resp.Listings = append(resp.Listings, mapListing(item))
	}
	return resp, nil
}

func mapListing(item *element) Listing {
	l := Listing{
		ItemID:     textOrNA(item.child("ItemID")),
		Title:      textOrNA(item.child("Title")),
		Price:      textOrNA(item.descendant("CurrentPrice")),
		Quantity:   textOrNA(item.descendant("Quantity")),
		Variations: make([]Variation, 0),
	}

	for _, v := range item.child("Variations").childrenNamed("Variation") {
		l.Variations = append(l.Variations, mapVariation(v))
	}
	return l
}

func mapVariation(v *element) Variation {
	out := Variation{
		Price:     textOrNA(v.child("StartPrice")),
		Quantity:  textOrNA(v.child("Quantity")),
		Title:     textOrNA(v.child("VariationTitle")),
		Specifics: make([]Specific, 0),
	}
	for _, nv := range v.descendants("NameValueList") {
		out.Specifics = append(out.Specifics, Specific{
			Name:  textOrNA(nv.child("Name")),
			Value: textOrNA(nv.child("Value")),
		})
	}
	return out
}
