package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/jobhub/pkg/models"
)

var (
	// ErrNoMatch means the field selector matched nothing inside the card
	ErrNoMatch = errors.New("selector matched nothing")
	// ErrNoAttribute means the element was found but lacks the attribute
	ErrNoAttribute = errors.New("attribute not present")
)

// FieldResult is the outcome of extracting one field. Value is "" whenever
// Err is set; the error says why so adapters can pick a sentinel.
type FieldResult struct {
	Name  string
	Value string
	Err   error
}

// OK reports whether the field was found
func (r FieldResult) OK() bool {
	return r.Err == nil
}

// Card is one matched base element with its per-field results in schema order
type Card struct {
	Index     int
	Fields    []FieldResult
	Selection *goquery.Selection
}

// Job flattens the card into a record. Missing fields are present with "".
func (c Card) Job() models.Job {
	job := make(models.Job, len(c.Fields))
	for _, f := range c.Fields {
		job[f.Name] = f.Value
	}
	return job
}

// Missing returns the names of fields that could not be extracted
func (c Card) Missing() []string {
	var out []string
	for _, f := range c.Fields {
		if !f.OK() {
			out = append(out, f.Name)
		}
	}
	return out
}

// Parse builds a goquery document from raw HTML
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ExtractCards walks every match of the base selector in document order
// and applies each field of the schema to it.
func ExtractCards(doc *goquery.Document, schema Schema) []Card {
	if doc == nil || schema.BaseSelector == "" {
		return nil
	}

	var cards []Card
	doc.Find(schema.BaseSelector).Each(func(i int, sel *goquery.Selection) {
		card := Card{
			Index:     i,
			Fields:    make([]FieldResult, 0, len(schema.Fields)),
			Selection: sel,
		}
		for _, f := range schema.Fields {
			card.Fields = append(card.Fields, ExtractField(sel, f))
		}
		cards = append(cards, card)
	})
	return cards
}

// Extract returns one record per base element. A document without any base
// element yields an empty slice, never an error.
func Extract(doc *goquery.Document, schema Schema) []models.Job {
	cards := ExtractCards(doc, schema)
	jobs := make([]models.Job, 0, len(cards))
	for _, c := range cards {
		jobs = append(jobs, c.Job())
	}
	return jobs
}

// ExtractHTML parses body and runs Extract over it
func ExtractHTML(body []byte, schema Schema) ([]models.Job, error) {
	doc, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return Extract(doc, schema), nil
}

// ExtractField applies one field rule to a card
func ExtractField(card *goquery.Selection, f Field) FieldResult {
	res := FieldResult{Name: f.Name}

	target := card
	if f.Selector != "" {
		target = card.Find(f.Selector).First()
	}
	if target.Length() == 0 {
		res.Err = ErrNoMatch
		return res
	}

	switch f.Mode {
	case Attribute:
		val, ok := target.Attr(f.Attr)
		if !ok {
			res.Err = ErrNoAttribute
			return res
		}
		res.Value = strings.TrimSpace(val)
	default:
		res.Value = CleanText(target.Text())
	}
	return res
}

// CleanText trims the text and collapses internal runs of whitespace, which
// listing markup is full of.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
