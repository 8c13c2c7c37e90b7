// Command rbody2d runs and inspects 2D rigid-body scenes, grounded on
// the teacher's cmd/dynsim CLI: a cobra root command with run/list/
// plot/analyze/export/presets subcommands over a storage.Store-backed
// run history.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rbody2d/engine/internal/analysis"
	"github.com/rbody2d/engine/internal/export"
	"github.com/rbody2d/engine/internal/plot"
	"github.com/rbody2d/engine/internal/scenario"
	"github.com/rbody2d/engine/internal/storage"
	"github.com/rbody2d/engine/internal/tui"
)

var (
	dataDir   string
	ticks     int
	sceneFile string
	bodyIndex int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rbody2d",
		Short: "2D rigid-body symbolic physics engine",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rbody2d", "run data directory")

	runCmd := &cobra.Command{
		Use:   "run [family] [preset]",
		Short: "run a scene preset and record its tick history",
		Args:  cobra.ExactArgs(2),
		RunE:  runScene,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "override the preset's tick count")
	runCmd.Flags().StringVar(&sceneFile, "scene", "", "load a scene from YAML instead of a preset")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list presets in a scenario family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := scenario.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for family: %s\n", args[0])
				return nil
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's recorded body positions",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectral analysis of a recorded body's x position",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 0, "index of the body to analyze")

	svgCmd := &cobra.Command{
		Use:   "snapshot [family] [preset]",
		Short: "render a scene's initial frame to SVG on stdout",
		Args:  cobra.ExactArgs(2),
		RunE:  snapshotScene,
	}

	var liveScale float64
	liveCmd := &cobra.Command{
		Use:   "live [family] [preset]",
		Short: "run a scene with a live terminal view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadScene(args[0], args[1])
			if err != nil {
				return err
			}
			e, err := sc.Build()
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.NewModel(args[0]+"/"+args[1], e, liveScale))
			_, err = p.Run()
			return err
		},
	}
	liveCmd.Flags().Float64Var(&liveScale, "scale", 5.0, "grid cells per world unit")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportCmd, analyzeCmd, svgCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScene(family, name string) (*scenario.Scene, error) {
	if sceneFile != "" {
		return scenario.Load(sceneFile)
	}
	sc := scenario.GetPreset(family, name)
	if sc == nil {
		return nil, fmt.Errorf("unknown preset %s/%s", family, name)
	}
	return sc, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	family, name := args[0], args[1]
	sc, err := loadScene(family, name)
	if err != nil {
		return err
	}

	e, err := sc.Build()
	if err != nil {
		return err
	}

	n := sc.Ticks
	if ticks > 0 {
		n = ticks
	}
	if n <= 0 {
		n = 600
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s/%s for %d ticks...\n", family, name, n)
	start := time.Now()

	frames := make([]storage.Frame, 0, n)
	var totalWarnings int
	for i := 0; i < n; i++ {
		events, err := e.Tick()
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		totalWarnings += len(events.Warnings)
		frames = append(frames, storage.Frame{Time: float64(i) * sc.Dt, States: e.State()})
	}

	runID, err := st.Save(family+"_"+name, sc.Dt, frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("warnings: %d\n", totalWarnings)
	fmt.Println()
	fmt.Print(e.Diagnostics())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tDT\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\n",
			run.ID, run.Scenario, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks, run.Dt, len(run.Bodies))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	_, rows, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nscenario: %s\nsamples: %d\n\n", meta.ID, meta.Scenario, len(rows))

	for bi, name := range meta.Bodies {
		xCol, yCol := bi*3, bi*3+1
		xs := make([]float64, len(rows))
		ys := make([]float64, len(rows))
		for i, row := range rows {
			if xCol < len(row) {
				xs[i] = row[xCol]
			}
			if yCol < len(row) {
				ys[i] = row[yCol]
			}
		}
		fmt.Println(plot.Series(xs, name+" x"))
		fmt.Println()
		fmt.Println(plot.Series(ys, name+" y"))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func snapshotScene(cmd *cobra.Command, args []string) error {
	sc, err := loadScene(args[0], args[1])
	if err != nil {
		return err
	}
	e, err := sc.Build()
	if err != nil {
		return err
	}
	fmt.Println(export.SceneFrameToSVG(e.Bodies(), 600, 600, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, rows, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if bodyIndex >= len(meta.Bodies) {
		return fmt.Errorf("run has %d bodies, index %d out of range", len(meta.Bodies), bodyIndex)
	}

	xCol := bodyIndex * 3
	xs := make([]float64, len(rows))
	for i, row := range rows {
		if xCol < len(row) {
			xs[i] = row[xCol]
		}
	}

	// PowerSpectrum requires a power-of-two length; truncate to the
	// largest power of two no greater than len(xs).
	n := 1
	for n*2 <= len(xs) {
		n *= 2
	}
	if n < 2 {
		return fmt.Errorf("not enough samples for spectral analysis")
	}
	ps, err := analysis.PowerSpectrum(xs[:n])
	if err != nil {
		return err
	}

	peak := 0
	for i, v := range ps {
		if v > ps[peak] {
			peak = i
		}
	}
	fmt.Printf("body: %s\nsamples analyzed: %d\ndominant bin: %d (power %.4f)\n", meta.Bodies[bodyIndex], n, peak, ps[peak])
	return nil
}
