package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/bazoscrape/internal/fetch"
	"github.com/hyperifyio/bazoscrape/internal/listing"
)

// UsageMessage is printed when the command line does not hold exactly one URL.
const UsageMessage = "Wrong number of arguments. Usage: bazoscrape <URL>"

const invalidURLMessage = "Invalid URL!"

// Message maps a run error to the single line shown to the user.
// Extraction failures reuse the invalid URL text: from the user's side a page
// that is not a listing means the URL was wrong.
func Message(err error) string {
	var (
		serr *fetch.StatusError
		terr *fetch.TransportError
		xerr *listing.ExtractionError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUsage):
		return UsageMessage
	case errors.Is(err, ErrInvalidURL), errors.As(err, &xerr):
		return invalidURLMessage
	case errors.As(err, &serr):
		return fmt.Sprintf("Failed to retrieve page. Status code %d!", serr.Code)
	case errors.As(err, &terr):
		return terr.Kind.Message()
	default:
		return fetch.KindConnection.Message()
	}
}

// PrintListing writes the four fields, wrapping the description at width runes.
func PrintListing(w io.Writer, l listing.Listing, width int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", l.Title)
	fmt.Fprintf(&b, "Price: %s\n", l.Price)
	fmt.Fprintf(&b, "Date: %s\n", l.Date)
	b.WriteString("Description:\n")
	for _, line := range listing.FormatDescriptionWidth(l.Description, width) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
