package listing

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func parseFixture(t *testing.T) *goquery.Document {
	t.Helper()
	f, err := os.Open("testdata/listing.html")
	require.NoError(t, err)
	defer f.Close()
	doc, err := Parse(f)
	require.NoError(t, err)
	return doc
}

func TestExtract_Fixture(t *testing.T) {
	doc := parseFixture(t)

	l, err := Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, "Horský bicykel Kellys Spider 29", l.Title)
	assert.Equal(t, "15 €", l.Price)
	assert.Equal(t, "12.3.2024", l.Date)
	assert.True(t, strings.HasPrefix(l.Description, "Predám horský bicykel"), l.Description)
	assert.NotContains(t, l.Description, "not this one")
}

func TestExtractTitle_Verbatim(t *testing.T) {
	doc := parseString(t, `<h1 class="nadpisdetail">  Auto <b>Škoda</b> Octavia </h1>`)
	title, err := ExtractTitle(doc)
	require.NoError(t, err)
	assert.Equal(t, "  Auto Škoda Octavia ", title)
}

func TestExtractTitle_MissingMarker(t *testing.T) {
	doc := parseString(t, `<h1 class="nadpis">Auto</h1>`)
	_, err := ExtractTitle(doc)
	require.Error(t, err)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, "title", xerr.Field)
	assert.Equal(t, "nadpisdetail", xerr.Marker)
	assert.ErrorIs(t, err, ErrMarkerNotFound)
}

func TestExtract_ClassMustMatchExactly(t *testing.T) {
	// A class list containing the marker is not the marker element.
	doc := parseString(t, `<h1 class="nadpisdetail big">Auto</h1>`)
	_, err := ExtractTitle(doc)
	assert.ErrorIs(t, err, ErrMarkerNotFound)
}

func TestExtract_FirstMatchWins(t *testing.T) {
	doc := parseString(t, `<div class="popisdetail">first</div><div class="popisdetail">second</div>`)
	d, err := ExtractDescription(doc)
	require.NoError(t, err)
	assert.Equal(t, "first", d)
}

func TestExtractDate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"plain", "... [12.3.2024] ...", "12.3.2024"},
		{"first pair", "[1.1.2024] [2.2.2024]", "1.1.2024"},
		{"closing before opening is skipped", "x] - [5.6.2023]", "5.6.2023"},
		{"empty brackets", "topované []", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseString(t, `<span class="velikost10">`+tc.text+`</span>`)
			got, err := ExtractDate(doc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractDate_Malformed(t *testing.T) {
	for _, text := range []string{"no brackets here", "[12.3.2024", "12.3.2024]"} {
		doc := parseString(t, `<span class="velikost10">`+text+`</span>`)
		_, err := ExtractDate(doc)
		assert.ErrorIs(t, err, ErrMalformedField, text)
	}
}

func TestExtractDate_MissingMarker(t *testing.T) {
	doc := parseString(t, `<span class="velikost12">[12.3.2024]</span>`)
	_, err := ExtractDate(doc)
	assert.ErrorIs(t, err, ErrMarkerNotFound)
}

func TestExtractPrice(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"simple", "Cena:  15 €", "15 €"},
		{"surrounding text", "Lokalita: Žilina Cena:  1 200 € Videné: 4 ľudí €", "1 200 €"},
		{"label needs two spaces", "Cena: 9 € Cena:  10 €", "10 €"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseString(t, `<div class="listadvlevo">`+tc.text+`</div>`)
			got, err := ExtractPrice(doc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractPrice_Malformed(t *testing.T) {
	for _, text := range []string{"Cena: 15 €", "Cena:  Dohodou", "15 €"} {
		doc := parseString(t, `<div class="listadvlevo">`+text+`</div>`)
		_, err := ExtractPrice(doc)
		assert.ErrorIs(t, err, ErrMalformedField, text)

		var xerr *ExtractionError
		require.True(t, errors.As(err, &xerr))
		assert.Equal(t, "price", xerr.Field)
	}
}

func TestExtract_StopsAtFirstFailure(t *testing.T) {
	doc := parseString(t, `<span class="velikost10">[1.1.2024]</span><div class="listadvlevo">Cena:  5 €</div><div class="popisdetail">x</div>`)
	l, err := Extract(doc)
	require.Error(t, err)
	assert.Equal(t, Listing{}, l)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, "title", xerr.Field)
}

func TestExtract_FieldsAreIndependent(t *testing.T) {
	// Price is broken but the other fields still extract on their own.
	doc := parseString(t, `<h1 class="nadpisdetail">T</h1><span class="velikost10">[1.1.2024]</span><div class="listadvlevo">Cena:  ?</div><div class="popisdetail">D</div>`)
	_, err := ExtractPrice(doc)
	assert.ErrorIs(t, err, ErrMalformedField)

	title, err := ExtractTitle(doc)
	require.NoError(t, err)
	assert.Equal(t, "T", title)
	date, err := ExtractDate(doc)
	require.NoError(t, err)
	assert.Equal(t, "1.1.2024", date)
	desc, err := ExtractDescription(doc)
	require.NoError(t, err)
	assert.Equal(t, "D", desc)
}

func TestExtractTitle_KeepsDecomposedText(t *testing.T) {
	// S followed by a combining caron stays as written.
	doc := parseString(t, "<h1 class=\"nadpisdetail\">S\u030ckoda</h1>")
	title, err := ExtractTitle(doc)
	require.NoError(t, err)
	assert.Equal(t, "S\u030ckoda", title)
}

func TestExtractPrice_NormalizesDecomposedText(t *testing.T) {
	doc := parseString(t, "<div class=\"listadvlevo\">Cena:  5 \u20ac za ks\u030c</div>")
	price, err := ExtractPrice(doc)
	require.NoError(t, err)
	assert.Equal(t, "5 \u20ac", price)

	// Parsed fields come back composed.
	doc = parseString(t, "<span class=\"velikost10\">[Z\u030c 1.2.2024]</span>")
	date, err := ExtractDate(doc)
	require.NoError(t, err)
	assert.Equal(t, "\u017d 1.2.2024", date)
}

func TestExtract_NilDocument(t *testing.T) {
	_, err := ExtractTitle(nil)
	assert.ErrorIs(t, err, ErrMarkerNotFound)
}

func TestNewMarkerExtractor_CustomMarkers(t *testing.T) {
	e, err := NewMarkerExtractor(Markers{Title: "h", Date: "d", Price: "p", Description: "x"})
	require.NoError(t, err)
	doc := parseString(t, `<p class="h">T</p><p class="d">[3.3.2023]</p><p class="p">Cena:  7 €</p><p class="x">D</p>`)
	l, err := e.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, Listing{Title: "T", Price: "7 €", Date: "3.3.2023", Description: "D"}, l)
}

func TestNewMarkerExtractor_EmptyMarker(t *testing.T) {
	_, err := NewMarkerExtractor(Markers{Title: "a", Date: "b", Price: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}
