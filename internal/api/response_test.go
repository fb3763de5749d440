package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseListings(body []byte) ([]Listing, error) {
	resp, err := ParseSellingResponse(body)
	if err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

const sellingResponseXML = `<?xml version="1.0" encoding="UTF-8"?>
<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Timestamp>2024-05-01T10:00:00.000Z</Timestamp>
  <Ack>Success</Ack>
  <ActiveList>
    <ItemArray>
      <Item>
        <ItemID>110001</ItemID>
        <Title>Vintage Lamp</Title>
        <SellingStatus>
          <CurrentPrice currencyID="USD">24.99</CurrentPrice>
        </SellingStatus>
        <Quantity>3</Quantity>
      </Item>
      <Item>
        <ItemID>110002</ItemID>
        <Title>Cotton T-Shirt</Title>
        <SellingStatus>
          <CurrentPrice currencyID="USD">12.00</CurrentPrice>
        </SellingStatus>
        <Quantity>40</Quantity>
        <Variations>
          <Variation>
            <StartPrice currencyID="USD">12.00</StartPrice>
            <Quantity>15</Quantity>
            <VariationTitle>Cotton T-Shirt[Red,M]</VariationTitle>
            <VariationSpecifics>
              <NameValueList>
                <Name>Color</Name>
                <Value>Red</Value>
              </NameValueList>
              <NameValueList>
                <Name>Size</Name>
                <Value>M</Value>
              </NameValueList>
            </VariationSpecifics>
          </Variation>
          <Variation>
            <StartPrice currencyID="USD">13.50</StartPrice>
            <Quantity>25</Quantity>
            <VariationSpecifics>
              <NameValueList>
                <Name>Color</Name>
              </NameValueList>
              <NameValueList>
                <Value>XL</Value>
              </NameValueList>
            </VariationSpecifics>
          </Variation>
        </Variations>
      </Item>
      <Item>
        <ItemID>110003</ItemID>
      </Item>
      <Item>
        <Title>Unlisted Draft</Title>
        <SellingStatus>
          <CurrentPrice currencyID="USD">5.00</CurrentPrice>
        </SellingStatus>
      </Item>
    </ItemArray>
  </ActiveList>
</GetMyeBaySellingResponse>`

func TestParseListingsDocumentOrder(t *testing.T) {
	listings, err := parseListings([]byte(sellingResponseXML))
	require.NoError(t, err)
	require.Len(t, listings, 4)

	assert.Equal(t, "110001", listings[0].ItemID)
	assert.Equal(t, "110002", listings[1].ItemID)
	assert.Equal(t, "110003", listings[2].ItemID)
	assert.Equal(t, "Unlisted Draft", listings[3].Title)
}

func TestParseListingsExtractsFields(t *testing.T) {
	listings, err := parseListings([]byte(sellingResponseXML))
	require.NoError(t, err)

	lamp := listings[0]
	assert.Equal(t, "Vintage Lamp", lamp.Title)
	assert.Equal(t, "24.99", lamp.Price)
	assert.Equal(t, "3", lamp.Quantity)
	assert.NotNil(t, lamp.Variations)
	assert.Empty(t, lamp.Variations)
}

func TestParseListingsMissingFieldsBecomeNA(t *testing.T) {
	listings, err := parseListings([]byte(sellingResponseXML))
	require.NoError(t, err)

	bare := listings[2]
	assert.Equal(t, "110003", bare.ItemID)
	assert.Equal(t, NotAvailable, bare.Title)
	assert.Equal(t, NotAvailable, bare.Price)
	assert.Equal(t, NotAvailable, bare.Quantity)

	noID := listings[3]
	assert.Equal(t, NotAvailable, noID.ItemID)
	assert.Equal(t, "Unlisted Draft", noID.Title)
	assert.Equal(t, "5.00", noID.Price)
	assert.Equal(t, NotAvailable, noID.Quantity)
}

func TestParseListingsVariations(t *testing.T) {
	listings, err := parseListings([]byte(sellingResponseXML))
	require.NoError(t, err)

	shirt := listings[1]
	require.Len(t, shirt.Variations, 2)

	first := shirt.Variations[0]
	assert.Equal(t, "12.00", first.Price)
	assert.Equal(t, "15", first.Quantity)
	assert.Equal(t, "Cotton T-Shirt[Red,M]", first.Title)
	assert.Equal(t, []Specific{{Name: "Color", Value: "Red"}, {Name: "Size", Value: "M"}}, first.Specifics)

	second := shirt.Variations[1]
	assert.Equal(t, "13.50", second.Price)
	assert.Equal(t, NotAvailable, second.Title)
	assert.Equal(t, []Specific{
		{Name: "Color", Value: NotAvailable},
		{Name: NotAvailable, Value: "XL"},
	}, second.Specifics)
}

func TestParseListingsQuantityTakesFirstNestedMatch(t *testing.T) {
	doc := `<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Item>
    <ItemID>1</ItemID>
    <Variations>
      <Variation><Quantity>7</Quantity></Variation>
    </Variations>
    <Quantity>99</Quantity>
  </Item>
</GetMyeBaySellingResponse>`

	listings, err := parseListings([]byte(doc))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "7", listings[0].Quantity)
}

func TestParseListingsIgnoresForeignNamespace(t *testing.T) {
	doc := `<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Item>
    <ItemID>1</ItemID>
    <x:Title xmlns:x="urn:other">Wrong</x:Title>
  </Item>
  <Item xmlns="">
    <ItemID>2</ItemID>
  </Item>
</GetMyeBaySellingResponse>`

	listings, err := parseListings([]byte(doc))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, NotAvailable, listings[0].Title)
}

func TestParseListingsEmptyElementIsNA(t *testing.T) {
	doc := `<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Item><ItemID>1</ItemID><Title/></Item>
</GetMyeBaySellingResponse>`

	listings, err := parseListings([]byte(doc))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, NotAvailable, listings[0].Title)
}

func TestParseListingsNoItems(t *testing.T) {
	doc := `<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents"><Ack>Success</Ack></GetMyeBaySellingResponse>`

	listings, err := parseListings([]byte(doc))
	require.NoError(t, err)
	assert.NotNil(t, listings)
	assert.Empty(t, listings)
}

func TestParseListingsMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"truncated", `<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents"><Item>`},
		{"not xml", `{"error": "nope"}`},
		{"mismatched tags", `<a><b></a></b>`},
		{"text after root", `<R xmlns="urn:ebay:apis:eBLBaseComponents"><Item><ItemID>1</ItemID></Item></R>junk after root`},
		{"text before root", `junk before <R xmlns="urn:ebay:apis:eBLBaseComponents"></R>`},
		{"unbound prefix", `<R xmlns="urn:ebay:apis:eBLBaseComponents"><ns:Item>1</ns:Item></R>`},
		{"unbound attribute prefix", `<R xmlns="urn:ebay:apis:eBLBaseComponents"><Item p:id="1"/></R>`},
		{"stray end tag", `<R></R></Item>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseListings([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestParseSellingResponseFailureAck(t *testing.T) {
	doc := `<GetMyeBaySellingResponse xmlns="urn:ebay:apis:eBLBaseComponents">
  <Ack>Failure</Ack>
  <Errors>
    <ShortMessage>Auth token is invalid.</ShortMessage>
    <LongMessage>Validation of the authentication token in API request failed.</LongMessage>
    <ErrorCode>931</ErrorCode>
    <SeverityCode>Error</SeverityCode>
  </Errors>
</GetMyeBaySellingResponse>`

	resp, err := ParseSellingResponse([]byte(doc))
	require.NoError(t, err)
	assert.True(t, resp.Failed())
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Auth token is invalid.", resp.Errors[0].ShortMessage)
	assert.Equal(t, "931", resp.Errors[0].ErrorCode)
	assert.Empty(t, resp.Listings)
}

func TestListingJSONShape(t *testing.T) {
	l := Listing{
		ItemID:   "1",
		Title:    "Shirt",
		Price:    "9.99",
		Quantity: NotAvailable,
		Variations: []Variation{{
			Price:     "9.99",
			Quantity:  "2",
			Title:     NotAvailable,
			Specifics: []Specific{{Name: "Color", Value: "Blue"}},
		}},
	}

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ItemID": "1",
		"Title": "Shirt",
		"Price": "9.99",
		"Quantity": "N/A",
		"Variations": [{
			"Price": "9.99",
			"Quantity": "2",
			"Title": "N/A",
			"Specifics": [{"Color": "Blue"}]
		}]
	}`, string(out))
}

func TestParseListingsPrefixedNamespaceAndSurroundingWhitespace(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>

<e:GetMyeBaySellingResponse xmlns:e="urn:ebay:apis:eBLBaseComponents">
  <e:Item xml:lang="en">
    <e:ItemID>7</e:ItemID>
    <e:Title>Prefixed</e:Title>
  </e:Item>
</e:GetMyeBaySellingResponse>
  `

	listings, err := parseListings([]byte(doc))
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "7", listings[0].ItemID)
	assert.Equal(t, "Prefixed", listings[0].Title)
}
