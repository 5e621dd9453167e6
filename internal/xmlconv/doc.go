// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package xmlconv converts between the canonical value tree and XML.
//
// The mapping is deliberately simple and one-way in places:
//
//   - An array under key K becomes K sibling elements named K, not a wrapper.
//   - Parsing collapses repeated sibling names back into an array, so a
//     one-element array comes back as a plain string.
//   - Leaf elements become strings. Numbers and booleans do not survive the trip.
//   - The root element's name is dropped on parse.
//
// JSONToXML and XMLToJSON return (value, error). ConvertJSONToXML and
// ConvertXMLToJSON wrap them in the convert.Result style used by the other
// converters.
package xmlconv
