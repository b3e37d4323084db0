// Package listing extracts the advertised fields of a single bazos.sk listing
// page from its parsed HTML.
package listing

import (
	"errors"
	"fmt"
)

// Listing is the set of fields printed for one advertisement.
type Listing struct {
	Title       string
	Price       string
	Date        string
	Description string
}

// Markers are the class attribute values identifying the element that holds
// each field. An element matches only when its class attribute equals the
// marker exactly.
type Markers struct {
	Title       string
	Date        string
	Price       string
	Description string
}

// DefaultMarkers matches the current bazos.sk detail page layout.
var DefaultMarkers = Markers{
	Title:       "nadpisdetail",
	Date:        "velikost10",
	Price:       "listadvlevo",
	Description: "popisdetail",
}

var (
	// ErrMarkerNotFound reports that no element carries the field's marker class.
	ErrMarkerNotFound = errors.New("marker element not found")
	// ErrMalformedField reports that the marker element exists but its text
	// lacks the delimiters the field is parsed from.
	ErrMalformedField = errors.New("malformed field text")
)

// ExtractionError is returned when a field cannot be located or parsed.
type ExtractionError struct {
	Field  string
	Marker string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s (class %q): %v", e.Field, e.Marker, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
