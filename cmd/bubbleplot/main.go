package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bubbleplot/internal/chart"
	"bubbleplot/internal/config"
	"bubbleplot/internal/force"
	"bubbleplot/internal/render"
	"bubbleplot/internal/storage"
	"bubbleplot/internal/viz"
)

var (
	dataDir   string
	outPath   string
	preset    string
	dataFile  string
	saveRun   bool
	frameRate int
	width     float64
	height    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bubbleplot",
		Short: "force-directed bubble charts from tabular data",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".bubbleplot", "layout run directory")

	renderCmd := &cobra.Command{
		Use:   "render [chartspec...]",
		Short: "lay out charts and write SVG",
		RunE:  renderCharts,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (single chart only)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use a built-in chart spec")
	renderCmd.Flags().StringVar(&dataFile, "data", "", "data file for --preset")
	renderCmd.Flags().BoolVar(&saveRun, "save", false, "persist the layout run")
	renderCmd.Flags().Float64Var(&width, "width", 0, "override viewport width")
	renderCmd.Flags().Float64Var(&height, "height", 0, "override viewport height")

	layoutCmd := &cobra.Command{
		Use:   "layout [chartspec]",
		Short: "run the relaxation and print final positions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  layoutChart,
	}
	layoutCmd.Flags().StringVar(&preset, "preset", "", "use a built-in chart spec")
	layoutCmd.Flags().StringVar(&dataFile, "data", "", "data file for --preset")

	liveCmd := &cobra.Command{
		Use:   "live [chartspec]",
		Short: "animate the relaxation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use a built-in chart spec")
	liveCmd.Flags().StringVar(&dataFile, "data", "", "data file for --preset")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved layout runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run as an ascii scatter",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's points as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	fieldsCmd := &cobra.Command{
		Use:   "fields [datafile]",
		Short: "list the fields in a data file",
		Args:  cobra.ExactArgs(1),
		RunE:  listFields,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in chart specs",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the relaxation",
		RunE:  benchRelax,
	}

	rootCmd.AddCommand(renderCmd, layoutCmd, liveCmd, listCmd, showCmd, exportCmd, exportCSVCmd, fieldsCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadChart builds a chart from a spec file, or from --preset plus --data
// when no spec is given.
func loadChart(specPath string) (*config.Chart, *chart.Chart, error) {
	var cfg *config.Chart
	dataPath := dataFile

	switch {
	case specPath != "":
		loaded, err := config.Load(specPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		if dataPath == "" {
			dataPath = cfg.ResolveData(specPath)
		}
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
	default:
		return nil, nil, fmt.Errorf("need a chart spec file or --preset")
	}

	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}

	var records []chart.Record
	if dataPath != "" {
		loaded, err := chart.LoadRecords(dataPath)
		if err != nil {
			return nil, nil, err
		}
		records = loaded
	}

	c := chart.New(cfg.Width, cfg.Height, records, cfg.Dimensions)
	c.SetLabelFunc(cfg.LabelFunc())
	c.SetSelections(cfg.Select)
	return cfg, c, nil
}

func renderCharts(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return renderOne(cmd.Context(), "")
	}
	if outPath != "" && len(args) > 1 {
		return fmt.Errorf("--out needs a single chart spec")
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, spec := range args {
		spec := spec
		g.Go(func() error {
			return renderOne(ctx, spec)
		})
	}
	return g.Wait()
}

func renderOne(ctx context.Context, specPath string) error {
	cfg, c, err := loadChart(specPath)
	if err != nil {
		return err
	}

	start := time.Now()
	stats, err := c.Relax(ctx, cfg.ForceConfig(), nil)
	if err != nil {
		return err
	}

	out := outPath
	if out == "" {
		out = svgPath(specPath, cfg)
	}
	if err := render.WriteFile(out, c, render.DefaultOptions()); err != nil {
		return err
	}

	fmt.Printf("%s: %d bubbles, %d ticks in %v -> %s\n",
		title(specPath, cfg), len(c.Points()), stats.Ticks, time.Since(start).Round(time.Millisecond), out)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(title(specPath, cfg), c, stats)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func svgPath(specPath string, cfg *config.Chart) string {
	if specPath != "" {
		return strings.TrimSuffix(specPath, filepath.Ext(specPath)) + ".svg"
	}
	name := cfg.Title
	if name == "" {
		name = "chart"
	}
	return name + ".svg"
}

func title(specPath string, cfg *config.Chart) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	if specPath != "" {
		return strings.TrimSuffix(filepath.Base(specPath), filepath.Ext(specPath))
	}
	return "chart"
}

func layoutChart(cmd *cobra.Command, args []string) error {
	specPath := ""
	if len(args) > 0 {
		specPath = args[0]
	}
	cfg, c, err := loadChart(specPath)
	if err != nil {
		return err
	}

	stats, err := c.Relax(cmd.Context(), cfg.ForceConfig(), nil)
	if err != nil {
		return err
	}

	fmt.Printf("converged=%v ticks=%d alpha=%.5f\n\n", stats.Converged, stats.Ticks, stats.Alpha)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tX\tY\tR\tFILL\tLABEL")
	for _, p := range c.Points() {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.1f\t%s\t%s\n", p.Index, p.X, p.Y, p.R, p.Fill, p.Label)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	specPath := ""
	if len(args) > 0 {
		specPath = args[0]
	}
	cfg, c, err := loadChart(specPath)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(title(specPath, cfg), c, cfg.ForceConfig(), frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
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
	fmt.Fprintln(w, "ID\tTITLE\tTIME\tPOINTS\tTICKS\tCONVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%v\n",
			run.ID,
			run.Title,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Layout.Ticks,
			run.Layout.Converged,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("title: %s\n", meta.Title)
	fmt.Printf("viewport: %.0fx%.0f\n", meta.Width, meta.Height)
	fmt.Printf("selections: size=%s color=%s x=%s y=%s\n",
		meta.Select.Size, meta.Select.Color, meta.Select.XAxis, meta.Select.YAxis)
	fmt.Printf("ticks: %d converged: %v\n\n", meta.Layout.Ticks, meta.Layout.Converged)

	canvas := viz.NewCanvas(72, 22, meta.Width, meta.Height)
	for _, p := range points {
		r := '●'
		for _, lr := range p.Label {
			r = lr
			break
		}
		canvas.DrawCircle(p.X, p.Y, p.R, r)
	}
	fmt.Println(canvas.String())
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"index", "x", "y", "r", "fill", "label"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.Itoa(p.Index),
			strconv.FormatFloat(p.X, 'f', 4, 64),
			strconv.FormatFloat(p.Y, 'f', 4, 64),
			strconv.FormatFloat(p.R, 'f', 4, 64),
			p.Fill,
			p.Label,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func listFields(cmd *cobra.Command, args []string) error {
	records, err := chart.LoadRecords(args[0])
	if err != nil {
		return err
	}

	names, kinds := chart.InferFields(records)
	fmt.Printf("%d records\n\n", len(records))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tKIND")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, kinds[name])
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVIEWPORT\tSIZE\tCOLOR\tX\tY")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0fx%.0f\t%s\t%s\t%s\t%s\n",
			name, cfg.Width, cfg.Height,
			cfg.Select.Size, cfg.Select.Color, cfg.Select.XAxis, cfg.Select.YAxis)
	}
	return w.Flush()
}

func benchRelax(cmd *cobra.Command, args []string) error {
	sizes := []int{50, 200, 500}
	paddings := []float64{0, 3, 10}

	fmt.Println("benchmarking relaxation")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tPADDING\tTICKS\tTIME\tTICKS/SEC")

	rng := rand.New(rand.NewSource(42))
	for _, n := range sizes {
		for _, padding := range paddings {
			bodies := make([]*force.Body, n)
			for i := range bodies {
				bodies[i] = &force.Body{
					X: 400, Y: 250,
					R:  4 + rng.Float64()*16,
					TX: 40 + rng.Float64()*720,
					TY: 40 + rng.Float64()*420,
				}
			}

			cfg := force.DefaultConfig()
			cfg.Padding = padding

			sim, err := force.New(bodies, cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := sim.Run(cmd.Context(), nil); err != nil {
				return err
			}
			elapsed := time.Since(start)

			ticksPerSec := float64(sim.Ticks()) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%.0f\t%d\t%v\t%.0f\n", n, padding, sim.Ticks(), elapsed.Round(time.Microsecond), ticksPerSec)
		}
	}
	return w.Flush()
}
