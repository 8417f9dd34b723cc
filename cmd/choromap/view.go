package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"choromap/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive terminal map",
	RunE: func(cmd *cobra.Command, args []string) error {
		// the terminal belongs to the map; log only when a file is configured
		if cfg.Log.File == "" {
			zap.ReplaceGlobals(zap.NewNop())
		}

		src, err := loadSources(cfg)
		if err != nil {
			return err
		}
		m, err := tui.New(src.chart, src.topo, src.data)
		if err != nil {
			return err
		}
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
			return eris.Wrap(err, "run viewer")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
