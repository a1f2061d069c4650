package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/phanxgames/bough"
	"github.com/phanxgames/bough/display"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// traceTick is the fixed step of a headless trace (60 Hz).
const traceTick = time.Second / 60

var traceCmd = &cobra.Command{
	Use:   "trace <spec>",
	Short: "Play a chart spec headless and print phase events and frames",
	Long: `trace mounts the chart at a fixed 60 Hz step without opening a window. It
prints every phase event as it is applied and the frames of every leaf at a
fixed frame interval, then stops when the scene settles or the script ends.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts traceOptions
		opts.script, _ = cmd.Flags().GetString("script")
		opts.maxFrames, _ = cmd.Flags().GetInt("max-frames")
		opts.every, _ = cmd.Flags().GetInt("every")
		opts.pngDir, _ = cmd.Flags().GetString("png-dir")
		return runTrace(cmd, cmd.OutOrStdout(), args[0], opts)
	},
}

func init() {
	traceCmd.Flags().String("script", "", "JSON test script driving data changes and snapshots")
	traceCmd.Flags().Int("max-frames", 3600, "Give up after this many frames")
	traceCmd.Flags().Int("every", 15, "Print leaf frames every N frames (0 prints only the last)")
	traceCmd.Flags().String("png-dir", "", "Write script snapshots as PNG images to this directory")
	rootCmd.AddCommand(traceCmd)
}

type traceOptions struct {
	script    string
	maxFrames int
	every     int
	pngDir    string
}

// eventPrinter writes applied phase events as they happen.
type eventPrinter struct {
	w     io.Writer
	scene *bough.Scene
}

func (p *eventPrinter) EmitEvent(ev bough.PhaseEvent) {
	fmt.Fprintf(p.w, "frame %d event %s leaf=%d gen=%d\n", p.scene.FrameCount(), ev.Kind, ev.Leaf, ev.Generation)
}

func runTrace(cmd *cobra.Command, w io.Writer, path string, opts traceOptions) error {
	scene, root, spec, err := loadScene(cmd, path)
	if err != nil {
		return err
	}
	scene.SetEntityStore(&eventPrinter{w: w, scene: scene})

	var runner *bough.TestRunner
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("trace: read script: %w", err)
		}
		runner, err = bough.LoadTestScript(data)
		if err != nil {
			return fmt.Errorf("trace: %w", err)
		}
		runner.SetBaseDir(filepath.Dir(opts.script))
		scene.SetTestRunner(runner)
	}

	stop, err := startMetrics(cmd, scene)
	if err != nil {
		return err
	}
	defer stop()

	if err := scene.Mount(root); err != nil {
		return err
	}
	done := func() bool {
		if runner != nil {
			return runner.Done()
		}
		return scene.Settled()
	}
	for !done() {
		if int(scene.FrameCount()) >= opts.maxFrames {
			return fmt.Errorf("trace: not finished after %d frames", opts.maxFrames)
		}
		scene.Update(traceTick)
		if opts.every > 0 && scene.FrameCount()%uint64(opts.every) == 0 {
			printFrames(w, scene.FrameCount(), scene.Frames())
		}
	}
	printFrames(w, scene.FrameCount(), scene.Frames())

	if runner != nil {
		for _, snap := range scene.Snapshots() {
			fmt.Fprintf(w, "snapshot %q at frame %d\n", snap.Label, snap.Frame)
			printFrames(w, snap.Frame, snap.Frames)
		}
		if err := runner.Err(); err != nil {
			return err
		}
		if opts.pngDir != "" {
			paths, err := display.WriteSnapshots(opts.pngDir, scene.Snapshots(), spec.Width, spec.Height)
			if err != nil {
				return fmt.Errorf("trace: %w", err)
			}
			for _, p := range paths {
				fmt.Fprintf(w, "wrote %s\n", p)
			}
		}
	}
	return nil
}

func printFrames(w io.Writer, frame uint64, frames []bough.Frame) {
	for _, f := range frames {
		name := ""
		if f.Leaf != nil {
			name = f.Leaf.Name
		}
		fmt.Fprintf(w, "frame %d leaf %d %s phase=%s", frame, f.Index, name, f.Phase)
		if clip, ok := f.ClipWidth(); ok {
			fmt.Fprintf(w, " clip=%s", formatValue(clip))
		}
		fmt.Fprintf(w, " data=[%s]\n", formatData(f.Data()))
	}
}

func formatData(data []bough.Datum) string {
	parts := make([]string, len(data))
	for i, d := range data {
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]string, len(keys))
		for j, k := range keys {
			fields[j] = k + ":" + formatValue(d[k])
		}
		parts[i] = "{" + strings.Join(fields, " ") + "}"
	}
	return strings.Join(parts, " ")
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := toFloat(v); ok {
		return fmt.Sprintf("%.4g", f)
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}
