// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert_test

import (
	"errors"
	"fmt"

	"github.com/jeranaias/toolbench/internal/convert"
)

func ExampleConvert() {
	res := convert.Convert("name,age\nada,36", convert.FormatCSV, convert.FormatJSON)
	if !res.Success {
		fmt.Println("error:", res.Error)
		return
	}
	fmt.Println(res.Data)
	// Output:
	// [
	//   {
	//     "name": "ada",
	//     "age": "36"
	//   }
	// ]
}

func ExampleToYAML() {
	parsed := convert.ParseJSON(`[{"host":"a","port":80},{"host":"b","port":443}]`)
	res := convert.ToYAML(parsed.Data)
	fmt.Println(res.Data)
	// Output:
	// - host: a
	//   port: 80
	// - host: b
	//   port: 443
}

func ExampleParseCSV_empty() {
	res := convert.ParseCSV("   ")
	fmt.Println(res.Success, res.Error, errors.Is(res.Err, convert.ErrEmptyInput))
	// Output: false Empty CSV data true
}
