package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"choromap/internal/choropleth"
	"choromap/internal/config"
	"choromap/internal/dataset"
	"choromap/internal/geom"
)

// sources is everything a command needs to draw a chart.
type sources struct {
	chart *choropleth.Chart
	topo  *geom.Topology
	data  *dataset.Table
}

// loadSources validates c, reads the topology and the dataset and builds
// the configured chart. The join itself is left to the caller.
func loadSources(c *config.Config) (*sources, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	topo, err := geom.Load(c.Map.Topology)
	if err != nil {
		return nil, eris.Wrap(err, "load topology")
	}
	data, err := dataset.Load(c.Data.Path, dataset.Options{Sheet: c.Data.Sheet, SheetIndex: c.Data.SheetIndex})
	if err != nil {
		return nil, eris.Wrap(err, "load dataset")
	}
	chart, err := c.NewChart(zap.L())
	if err != nil {
		return nil, err
	}

	zap.L().Info("sources loaded",
		zap.String("topology", c.Map.Topology),
		zap.Strings("collections", topo.Names()),
		zap.Int("features", topo.Len()),
		zap.String("data", c.Data.Path),
		zap.Int("records", len(data.Records)),
	)
	return &sources{chart: chart, topo: topo, data: data}, nil
}

// join runs the chart over the loaded sources.
func (s *sources) join() error {
	return s.chart.Data(s.data.Records, s.topo)
}
