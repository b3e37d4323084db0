package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

const (
	// priceLabel precedes the amount inside the price block.
	priceLabel = "Cena:  "
	// priceOffset is where the amount starts, counted from the label match.
	priceOffset = 7
	currency    = "€"
)

// Parse builds a queryable document from raw UTF-8 HTML.
func Parse(r io.Reader) (*goquery.Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return goquery.NewDocumentFromNode(node), nil
}

// ExtractTitle returns the product heading text as it appears on the page.
func ExtractTitle(doc *goquery.Document) (string, error) {
	return defaultExtractor.Title(doc)
}

// ExtractDate returns the last-change date found between the first '[' and
// the first ']' after it in the metadata line.
func ExtractDate(doc *goquery.Document) (string, error) {
	return defaultExtractor.Date(doc)
}

// ExtractPrice returns the amount following the "Cena:" label, up to and
// including the first Euro sign.
func ExtractPrice(doc *goquery.Document) (string, error) {
	return defaultExtractor.Price(doc)
}

// ExtractDescription returns the description block text as it appears on the page.
func ExtractDescription(doc *goquery.Document) (string, error) {
	return defaultExtractor.Description(doc)
}

// Extract runs all four field extractions with the default markers and stops
// at the first failure.
func Extract(doc *goquery.Document) (Listing, error) {
	return defaultExtractor.Extract(doc)
}

// bracketed returns the text strictly between the first '[' and the next ']'.
func bracketed(s string) (string, bool) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return "", false
	}
	rest := s[open+1:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// priceAfterLabel slices the amount out of the price block text. The cut is
// inclusive of the currency sign.
func priceAfterLabel(s string) (string, bool) {
	i := strings.Index(s, priceLabel)
	if i < 0 {
		return "", false
	}
	rest := s[i+priceOffset:]
	j := strings.Index(rest, currency)
	if j < 0 {
		return "", false
	}
	return rest[:j+len(currency)], true
}

// normalizeText composes text before the date and price sub-parsers run.
func normalizeText(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
