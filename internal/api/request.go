package api

import (
	"encoding/xml"
	"fmt"
)

const (
	tradingNamespace = "urn:ebay:apis:eBLBaseComponents"
	callName         = "GetMyeBaySelling"

	DefaultPageNumber     = 1
	DefaultEntriesPerPage = 200
)

// Pagination selects a page of the seller's active list.
type Pagination struct {
	PageNumber     int
	EntriesPerPage int
}

// DefaultPagination is what the endpoint uses when the caller passes nothing.
func DefaultPagination() Pagination {
	return Pagination{PageNumber: DefaultPageNumber, EntriesPerPage: DefaultEntriesPerPage}
}

type getMyeBaySellingRequest struct {
	XMLName     xml.Name             `xml:"urn:ebay:apis:eBLBaseComponents GetMyeBaySellingRequest"`
	Credentials requesterCredentials `xml:"RequesterCredentials"`
	ActiveList  activeList           `xml:"ActiveList"`
}

type requesterCredentials struct {
	AuthToken string `xml:"eBayAuthToken"`
}

type activeList struct {
	Pagination pagination `xml:"Pagination"`
}

type pagination struct {
	EntriesPerPage int `xml:"EntriesPerPage"`
	PageNumber     int `xml:"PageNumber"`
}

// buildSellingRequest renders the GetMyeBaySelling body. The token is escaped by the encoder.
func buildSellingRequest(token string, p Pagination) ([]byte, error) {
	req := getMyeBaySellingRequest{
		Credentials: requesterCredentials{AuthToken: token},
		ActiveList: activeList{Pagination: pagination{
			EntriesPerPage: p.EntriesPerPage,
			PageNumber:     p.PageNumber,
		}},
	}

	out, err := xml.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", callName, err)
	}
	return append([]byte(xml.Header), out...), nil
}
