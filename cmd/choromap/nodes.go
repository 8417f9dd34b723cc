package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"choromap/internal/choropleth"
)

var nodesUnbound bool

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print the join result, one row per feature",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadSources(cfg)
		if err != nil {
			return err
		}
		if err := src.join(); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), nodesTable(src.chart, nodesUnbound))
		return err
	},
}

func init() {
	nodesCmd.Flags().BoolVar(&nodesUnbound, "unbound", false, "list only features without a colorable value")
	rootCmd.AddCommand(nodesCmd)
}

func nodesTable(c *choropleth.Chart, unboundOnly bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("collection", "key", "name", c.Config().ValueField, "color")
	for _, n := range c.Nodes() {
		st, ok := c.Style(n)
		if unboundOnly && ok {
			continue
		}
		value := ""
		if v, has := n.Value(); has {
			value = c.FormatValue(v)
		}
		t.Row(n.Collection, n.Key, c.Name(n), value, st.FillColor)
	}
	return t.String()
}
