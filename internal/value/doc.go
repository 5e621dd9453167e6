// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package value provides the canonical in-memory tree shared by the converters.
//
// A Value is one of null, string, number, boolean, object or array. Objects keep
// the insertion order of their keys so that a CSV header or a JSON document comes
// back out in the order it went in. Numbers keep the literal they were parsed
// from, which makes re-serialization lossless.
//
// # Key Types
//
//   - Kind: the variant tag
//   - Value: the tagged variant
//   - Object: ordered name -> Value mapping
//
// # Usage
//
//	o := value.NewObject()
//	o.Set("name", value.Str("ada"))
//	o.Set("age", value.Num("36"))
//	v := value.Arr(value.Obj(o))
//	fmt.Println(v) // [{"name":"ada","age":36}]
package value
