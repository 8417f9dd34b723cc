package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"choromap/internal/choropleth"
)

var legendFormat string

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the legend of the configured chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSources(cfg)
		if err != nil {
			return err
		}
		if err := src.join(); err != nil {
			return err
		}
		return writeLegend(cmd.OutOrStdout(), src.chart.Legend(), legendFormat)
	},
}

func init() {
	legendCmd.Flags().StringVar(&legendFormat, "format", "text", "output format: text, yaml or json")
	rootCmd.AddCommand(legendCmd)
}

func writeLegend(w io.Writer, l choropleth.Legend, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return eris.Wrap(err, "encode legend yaml")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return eris.Wrap(err, "encode legend json")
		}
		return nil
	case "text":
		_, err := io.WriteString(w, legendText(l))
		return err
	default:
		return eris.Errorf("unknown legend format %q", format)
	}
}

// legendText lists the legend top down, highest bucket first.
func legendText(l choropleth.Legend) string {
	var b strings.Builder
	if l.Title != "" {
		fmt.Fprintf(&b, "%s\n", l.Title)
	}
	switch {
	case l.Gradient != nil:
		fmt.Fprintf(&b, "%s\n", l.Gradient.Top)
		for i := len(l.Gradient.Stops) - 1; i >= 0; i-- {
			fmt.Fprintf(&b, "  %s\n", l.Gradient.Stops[i])
		}
		fmt.Fprintf(&b, "%s\n", l.Gradient.Bottom)
	default:
		for i := len(l.Rows) - 1; i >= 0; i-- {
			row := l.Rows[i]
			fmt.Fprintf(&b, "  %s  %s\n", row.Color, row.Label)
			if row.BottomLabel != "" {
				fmt.Fprintf(&b, "           %s\n", row.BottomLabel)
			}
		}
	}
	return b.String()
}
