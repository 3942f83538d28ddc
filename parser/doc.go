// Package parser converts uploaded review files into core.Record values.
//
// Two layouts are recognized, selected by the file name through a
// core.FormatTable:
//
//   - Structured (JSON): a single review object or an array of them, each
//     carrying ProductName, Price, Review and Rating.
//   - Delimited (plain text): reviews separated by ';', each a run of
//     "Field: value" pairs separated by commas.
//
// Malformed entries never fail a parse. They are dropped from the result,
// reported as a Skip with a typed reason and logged as one diagnostic each.
// Parse only returns an error when the file name has no known format or when
// structured content is not valid JSON at all.
//
// # Delimited values
//
// Free-text values may contain commas, so fields are not split on ','.
// A value runs from "Field:" up to the first comma that is followed by
// another "word:" token, or to the end of the segment:
//
//	ProductName: Sony TV, Price: 12000, Review: I loved this, great buy, Rating: 4.85;
//
// yields the comment "I loved this, great buy".
package parser
