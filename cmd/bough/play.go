package main

import (
	"log/slog"

	"github.com/phanxgames/bough"
	"github.com/phanxgames/bough/display"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <spec>",
	Short: "Open a window playing a chart spec",
	Long: `play opens a window and plays the chart's load transition. Saving the spec
file animates the chart to the new data through exit and enter transitions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, args[0])
	},
}

func init() {
	playCmd.Flags().Bool("fps", false, "Show FPS and TPS")
	playCmd.Flags().Bool("no-watch", false, "Do not reload the spec when it changes")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, path string) error {
	scene, root, spec, err := loadScene(cmd, path)
	if err != nil {
		return err
	}
	if err := scene.Mount(root); err != nil {
		return err
	}
	stop, err := startMetrics(cmd, scene)
	if err != nil {
		return err
	}
	defer stop()

	logger := bough.NewLogger(slog.LevelInfo)
	cfg := display.Config{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Logger: logger,
	}
	cfg.ShowFPS, _ = cmd.Flags().GetBool("fps")

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); !noWatch {
		w, err := bough.NewSpecWatcher(path)
		if err != nil {
			return err
		}
		defer w.Close()
		cfg.Updates = reloads(w, logger)
	}
	return display.Run(scene, cfg)
}

// reloads turns spec file changes into trees. Specs that fail to load are
// logged and skipped; the chart keeps its current data.
func reloads(w *bough.SpecWatcher, logger *slog.Logger) <-chan *bough.Node {
	out := make(chan *bough.Node, 1)
	go func() {
		defer close(out)
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				spec, err := bough.LoadChartSpec(path)
				if err != nil {
					logger.Error("reload failed", "path", path, "error", err)
					continue
				}
				root, err := spec.BuildRoot()
				if err != nil {
					logger.Error("reload failed", "path", path, "error", err)
					continue
				}
				logger.Info("reloaded", "path", path)
				out <- root
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watch", "error", err)
			}
		}
	}()
	return out
}
