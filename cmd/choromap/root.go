package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"choromap/internal/config"
)

var cfg *config.Config

var (
	cfgFile    string
	topoPath   string
	dataPath   string
	fillField  string
	idField    string
	collection []string
)

var rootCmd = &cobra.Command{
	Use:   "choromap",
	Short: "Choropleth maps in the terminal",
	Long:  "Joins a tabular dataset (CSV, XLSX, JSON) to a topology (TopoJSON, GeoJSON, shapefile), colors every feature by a value field and draws the map with its legend.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		applyFlags(cmd, c)
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./choromap.yaml)")
	pf.StringVar(&topoPath, "topology", "", "topology file (.topojson, .geojson, .json, .shp)")
	pf.StringVar(&dataPath, "data", "", "dataset file (.csv, .xlsx, .json)")
	pf.StringVar(&fillField, "fill", "", "column holding the mapped value")
	pf.StringVar(&idField, "id", "", "column holding the join key")
	pf.StringSliceVar(&collection, "collection", nil, "topology collections to draw (default all)")
}

// applyFlags lets explicitly set flags win over file and env settings.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("topology") {
		c.Map.Topology = topoPath
	}
	if flags.Changed("data") {
		c.Data.Path = dataPath
	}
	if flags.Changed("fill") {
		c.Chart.ValueField = fillField
	}
	if flags.Changed("id") {
		c.Chart.IDField = idField
	}
	if flags.Changed("collection") {
		c.Map.Collections = collection
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
