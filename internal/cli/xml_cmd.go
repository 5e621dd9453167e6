// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/xmlconv"
)

func xmlCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "xml",
		Short: "Convert between JSON and XML",
		Long: `Convert between JSON and XML.

to-xml writes arrays as repeated sibling elements without a wrapper.
to-json drops attributes and the root element name; repeated child
elements become arrays.`,
	}
	c.AddCommand(xmlToXMLCmd(a), xmlToJSONCmd(a))
	return c
}

func xmlToXMLCmd(a *app) *cobra.Command {
	var root, out string

	c := &cobra.Command{
		Use:         "to-xml [file|-]",
		Short:       "Convert JSON to XML",
		Example:     `  toolbench xml to-xml order.json --root order`,
		Args:        maxArgs(1),
		Annotations: map[string]string{toolAnnotation: "xml"},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if !cmd.Flags().Changed("root") {
				root = a.cfg.Convert.XMLRoot
			}

			text, err := a.readInput("xml", input)
			if err != nil {
				return err
			}

			res := xmlconv.ConvertJSONToXML(text, root)
			logEvent(a.log, "xml", "direction", "to-xml", "root", root, "ok", res.Success)
			if !res.Success {
				return conversionError(res)
			}
			return a.writeOutput("xml", out, res.Data, "xml")
		},
	}

	c.Flags().StringVarP(&root, "root", "r", xmlconv.DefaultRoot, "root element name")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return c
}

func xmlToJSONCmd(a *app) *cobra.Command {
	var out string

	c := &cobra.Command{
		Use:         "to-json [file|-]",
		Short:       "Convert XML to JSON",
		Example:     `  toolbench xml to-json feed.xml --out feed.json`,
		Args:        maxArgs(1),
		Annotations: map[string]string{toolAnnotation: "xml"},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}

			text, err := a.readInput("xml", input)
			if err != nil {
				return err
			}

			res := xmlconv.ConvertXMLToJSON(text)
			logEvent(a.log, "xml", "direction", "to-json", "ok", res.Success)
			if !res.Success {
				return conversionError(res)
			}
			return a.writeOutput("xml", out, res.Data, "json")
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return c
}
