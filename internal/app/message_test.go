package app

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/bazoscrape/internal/fetch"
	"github.com/hyperifyio/bazoscrape/internal/listing"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"usage", ErrUsage, UsageMessage},
		{"invalid url", ErrInvalidURL, "Invalid URL!"},
		{"status", &fetch.StatusError{Code: 404}, "Failed to retrieve page. Status code 404!"},
		{"wrapped status", fmt.Errorf("get: %w", &fetch.StatusError{Code: 503}), "Failed to retrieve page. Status code 503!"},
		{"extraction", &listing.ExtractionError{Field: "price", Err: listing.ErrMalformedField}, "Invalid URL!"},
		{"timeout", &fetch.TransportError{Kind: fetch.KindTimeout, Err: errors.New("x")}, "Connection to server run out!"},
		{"reset", fetch.Classify(syscall.ECONNRESET), "Connection reset!"},
		{"pipe", fetch.Classify(syscall.EPIPE), "Pipe was broken!"},
		{"unsupported content", fmt.Errorf("%w: application/pdf", fetch.ErrUnsupportedContent), "An unexpected error occurred!"},
		{"body too large", fmt.Errorf("%w: over 10 bytes", fetch.ErrBodyTooLarge), "An unexpected error occurred!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Message(tc.err))
		})
	}
}

func TestPrintListing(t *testing.T) {
	var buf bytes.Buffer
	l := listing.Listing{
		Title:       "Bicykel",
		Price:       "15 €",
		Date:        "12.3.2024",
		Description: strings.Repeat("a", 85),
	}
	require.NoError(t, PrintListing(&buf, l, 80))

	want := "Title: Bicykel\n" +
		"Price: 15 €\n" +
		"Date: 12.3.2024\n" +
		"Description:\n" +
		strings.Repeat("a", 80) + "\n" +
		"aaaaa\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintListing_EmptyDescription(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintListing(&buf, listing.Listing{Title: "T", Price: "1 €", Date: "1.1.2024"}, 80))
	assert.Equal(t, "Title: T\nPrice: 1 €\nDate: 1.1.2024\nDescription:\n", buf.String())
}

func TestPrintListing_CustomWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintListing(&buf, listing.Listing{Description: "abcdef"}, 4))
	assert.True(t, strings.HasSuffix(buf.String(), "Description:\nabcd\nef\n"))
}
