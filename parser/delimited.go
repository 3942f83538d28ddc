package parser

import (
	"regexp"
	"strings"

	"github.com/poiesic/reviewpipe/core"
)

const segmentSeparator = ";"

// valueBoundary matches the comma that introduces the next "word:" token.
var valueBoundary = regexp.MustCompile(`\s*,\s*\w+:`)

// fieldMatcher locates "Name:" tokens in a segment, case-insensitively.
type fieldMatcher struct {
	name  string
	token *regexp.Regexp
}

func newFieldMatcher(name string) fieldMatcher {
	return fieldMatcher{
		name:  name,
		token: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `:\s*`),
	}
}

// extract returns the value of the field in segment. The value runs up to the
// first comma followed by another "word:" token, or to the end of the segment.
// Occurrences with an empty value are passed over.
func (m fieldMatcher) extract(segment string) (string, bool) {
	for _, loc := range m.token.FindAllStringIndex(segment, -1) {
		rest := segment[loc[1]:]
		end := len(rest)
		if b := valueBoundary.FindStringIndex(rest); b != nil {
			end = b[0]
		}
		if value := strings.TrimSpace(rest[:end]); value != "" {
			return value, true
		}
	}
	return "", false
}

type delimitedParser struct {
	productName fieldMatcher
	price       fieldMatcher
	review      fieldMatcher
	rating      fieldMatcher
}

func newDelimitedParser() *delimitedParser {
	return &delimitedParser{
		productName: newFieldMatcher(FieldProductName),
		price:       newFieldMatcher(FieldPrice),
		review:      newFieldMatcher(FieldReview),
		rating:      newFieldMatcher(FieldRating),
	}
}

// parse splits content on ';' and decodes each non-empty segment.
// Index counts non-empty segments only.
func (dp *delimitedParser) parse(content string, result *Result) {
	index := 0
	for _, segment := range strings.Split(content, segmentSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		dp.parseSegment(index, segment, result)
		index++
	}
}

func (dp *delimitedParser) parseSegment(index int, segment string, result *Result) {
	name, ok := dp.productName.extract(segment)
	if !ok {
		result.skip(index, fieldError(ErrMissingField, FieldProductName))
		return
	}
	priceText, ok := dp.price.extract(segment)
	if !ok {
		result.skip(index, fieldError(ErrMissingField, FieldPrice))
		return
	}
	comment, ok := dp.review.extract(segment)
	if !ok {
		result.skip(index, fieldError(ErrMissingField, FieldReview))
		return
	}
	ratingText, ok := dp.rating.extract(segment)
	if !ok {
		result.skip(index, fieldError(ErrMissingField, FieldRating))
		return
	}

	price, err := parseNumber(priceText, FieldPrice)
	if err != nil {
		result.skip(index, err)
		return
	}
	rating, err := parseNumber(ratingText, FieldRating)
	if err != nil {
		result.skip(index, err)
		return
	}

	result.accept(index, &core.Record{
		ProductName: name,
		Price:       price,
		Comment:     comment,
		Rating:      rating,
	})
}
