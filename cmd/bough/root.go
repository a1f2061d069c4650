package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/bough"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bough",
	Short: "bough animates keyed chart data through load, exit, enter and move transitions",
	Long: `bough reads chart specs (YAML or TOML) describing a tree of data series and
plays their transitions in a window, a terminal or as a headless trace.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log every frame and phase event")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

// loadScene parses the spec at path and returns a scene for it with the tree
// to mount.
func loadScene(cmd *cobra.Command, path string) (*bough.Scene, *bough.Node, *bough.ChartSpec, error) {
	spec, err := bough.LoadChartSpec(path)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, root, err := spec.Build()
	if err != nil {
		return nil, nil, nil, err
	}
	scene := bough.NewScene(cfg)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		scene.SetLogger(bough.NewLogger(slog.LevelDebug))
		scene.SetDebugMode(true)
	}
	return scene, root, spec, nil
}

// startMetrics serves the scene's stats when --metrics-addr is set. The
// returned stop function is always safe to call.
func startMetrics(cmd *cobra.Command, scene *bough.Scene) (func(), error) {
	addr, _ := cmd.Flags().GetString("metrics-addr")
	if addr == "" {
		return func() {}, nil
	}
	return serveMetrics(addr, scene.Stats())
}
