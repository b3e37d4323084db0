package listing

import (
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Extractor turns a parsed listing page into its printable fields.
// Implementations must not mutate the document.
type Extractor interface {
	Extract(doc *goquery.Document) (Listing, error)
}

// MarkerExtractor finds each field by exact class attribute match.
type MarkerExtractor struct {
	markers Markers

	title       cascadia.Selector
	date        cascadia.Selector
	price       cascadia.Selector
	description cascadia.Selector
}

var defaultExtractor = MustMarkerExtractor(DefaultMarkers)

// NewMarkerExtractor compiles a selector for every marker in m.
func NewMarkerExtractor(m Markers) (*MarkerExtractor, error) {
	e := &MarkerExtractor{markers: m}
	for _, f := range []struct {
		field  string
		marker string
		dst    *cascadia.Selector
	}{
		{"title", m.Title, &e.title},
		{"date", m.Date, &e.date},
		{"price", m.Price, &e.price},
		{"description", m.Description, &e.description},
	} {
		if f.marker == "" {
			return nil, fmt.Errorf("%s marker is empty", f.field)
		}
		sel, err := cascadia.Compile("[class=" + strconv.Quote(f.marker) + "]")
		if err != nil {
			return nil, fmt.Errorf("compile %s marker %q: %w", f.field, f.marker, err)
		}
		*f.dst = sel
	}
	return e, nil
}

// MustMarkerExtractor is like NewMarkerExtractor but panics on a bad marker.
func MustMarkerExtractor(m Markers) *MarkerExtractor {
	e, err := NewMarkerExtractor(m)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract returns all four fields, stopping at the first one that fails.
func (e *MarkerExtractor) Extract(doc *goquery.Document) (Listing, error) {
	var (
		l   Listing
		err error
	)
	if l.Title, err = e.Title(doc); err != nil {
		return Listing{}, err
	}
	if l.Price, err = e.Price(doc); err != nil {
		return Listing{}, err
	}
	if l.Date, err = e.Date(doc); err != nil {
		return Listing{}, err
	}
	if l.Description, err = e.Description(doc); err != nil {
		return Listing{}, err
	}
	return l, nil
}

// Title returns the heading text verbatim.
func (e *MarkerExtractor) Title(doc *goquery.Document) (string, error) {
	return e.text(doc, "title", e.markers.Title, e.title)
}

// Description returns the description block text verbatim.
func (e *MarkerExtractor) Description(doc *goquery.Document) (string, error) {
	return e.text(doc, "description", e.markers.Description, e.description)
}

// Date returns the text between the first '[' and the next ']' of the
// metadata line.
func (e *MarkerExtractor) Date(doc *goquery.Document) (string, error) {
	s, err := e.text(doc, "date", e.markers.Date, e.date)
	if err != nil {
		return "", err
	}
	d, ok := bracketed(normalizeText(s))
	if !ok {
		return "", &ExtractionError{Field: "date", Marker: e.markers.Date, Err: fmt.Errorf("%w: no [...] in %q", ErrMalformedField, s)}
	}
	return d, nil
}

// Price returns the amount after the "Cena:" label up to and including the
// first Euro sign.
func (e *MarkerExtractor) Price(doc *goquery.Document) (string, error) {
	s, err := e.text(doc, "price", e.markers.Price, e.price)
	if err != nil {
		return "", err
	}
	p, ok := priceAfterLabel(normalizeText(s))
	if !ok {
		return "", &ExtractionError{Field: "price", Marker: e.markers.Price, Err: fmt.Errorf("%w: no %q ... %s in %q", ErrMalformedField, priceLabel, currency, s)}
	}
	return p, nil
}

// text returns the text content of the first element matching sel.
func (e *MarkerExtractor) text(doc *goquery.Document, field, marker string, sel cascadia.Selector) (string, error) {
	if doc == nil {
		return "", &ExtractionError{Field: field, Marker: marker, Err: ErrMarkerNotFound}
	}
	found := doc.FindMatcher(sel).First()
	if found.Length() == 0 {
		return "", &ExtractionError{Field: field, Marker: marker, Err: ErrMarkerNotFound}
	}
	return found.Text(), nil
}
