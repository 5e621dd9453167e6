// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert converts structured text between CSV, TSV, JSON and a
// restricted YAML subset.
//
// Every parse and serialize function returns a discriminated result instead of
// panicking or returning a bare error: ParseResult for parsers, Result for
// serializers. A failed result carries a user-facing message in Error and a
// classified *Error in Err that can be matched with errors.Is against
// ErrEmptyInput, ErrParse, ErrInvalidShape and ErrInvalidXML.
//
// # Limitations
//
//   - CSV splitting is naive: quoted fields containing commas are not supported,
//     and ToCSV does not escape embedded quotes.
//   - Blank data lines in CSV and TSV are skipped rather than zipped against the
//     header into a record of empty strings. This differs on purpose from a
//     strict line-by-line reading, so blank separator lines never add rows.
//   - ParseYAML only understands flat "key: value" lines. It is not a YAML parser.
//   - ToYAML is best effort and does not round-trip nested data.
//
// # Usage
//
//	res := convert.Convert("a,b\n1,2", convert.FormatCSV, convert.FormatJSON)
//	if !res.Success {
//	    return res.Err
//	}
//	fmt.Println(res.Data)
package convert
