package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/san-kum/gridreplay/internal/config"
	"github.com/san-kum/gridreplay/internal/export"
	"github.com/san-kum/gridreplay/internal/gui"
	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/metrics"
	"github.com/san-kum/gridreplay/internal/replay"
	"github.com/san-kum/gridreplay/internal/storage"
	"github.com/san-kum/gridreplay/internal/viz"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	theme      string
	palette    string

	// export
	turn    int
	outPath string
	format  string

	// schema
	schemaOut string

	// info
	plotHeight int
	plotWidth  int
)

// session is what every command gets after flags, env and the config file are merged.
type session struct {
	v   *viper.Viper
	cfg *config.Config
	log *logging.Logger
}

var current session

func main() {
	if err := execute(newRootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs cmd and closes the session log on every path, failures included.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if current.log != nil {
		if cerr := current.log.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	current = session{}
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gridreplay [file]",
		Short:         "replay viewer for territory matches",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd)
			if err != nil {
				return err
			}
			current = s
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(cmd, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./"+config.FileName+")")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for logs and export history")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: "+strings.Join(logging.ValidLevels(), ", "))
	pf.StringVar(&theme, "theme", viz.ThemeMidnight.Name, "terminal theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&palette, "palette", config.DefaultPalette, "player palette: "+strings.Join(config.ListPresets(), ", "))

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "view a replay in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [file]",
		Short: "view a replay in a window",
		Args:  cobra.ExactArgs(1),
		RunE:  runGUI,
	}

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "print replay summary and territory plots",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	infoCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "export one turn without opening a viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().IntVar(&turn, "turn", 0, "turn to export")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file, - for stdout (default next to the replay)")
	exportCmd.Flags().StringVar(&format, "format", string(export.FormatText), "format: xxx, svg, json")

	exportsCmd := &cobra.Command{
		Use:   "exports",
		Short: "list export history",
		Args:  cobra.NoArgs,
		RunE:  listExports,
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "print the replay file JSON schema",
		Args:  cobra.NoArgs,
		RunE:  printSchema,
	}
	schemaCmd.Flags().StringVar(&schemaOut, "out", "", "write schema to file")

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list palette presets",
		Args:  cobra.NoArgs,
		RunE:  listPalettes,
	}

	rootCmd.AddCommand(viewCmd, guiCmd, infoCmd, exportCmd, exportsCmd, schemaCmd, palettesCmd)
	return rootCmd
}

// newViper layers defaults, the config file, GRIDREPLAY_* env vars and flags.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	config.SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("GRIDREPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"data_dir":       "data",
		"logging.level":  "log-level",
		"render.palette": "palette",
		"theme":          "theme",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

func setup(cmd *cobra.Command) (session, error) {
	v, err := newViper(cmd)
	if err != nil {
		return session{}, err
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return session{}, err
	}
	log, err := logging.NewLogger(cfg.LogFile(), cfg.Logging.Level)
	if err != nil {
		return session{}, err
	}
	log.Debug("session configured", "command", cmd.Name(), "config", v.ConfigFileUsed(), "data_dir", cfg.DataDir)
	return session{v: v, cfg: cfg, log: log}, nil
}

func loadReplay(path string) (*replay.MatchRecord, error) {
	rec, err := replay.Load(path)
	if err != nil {
		current.log.Error("replay load failed", "path", path, "error", err)
		return nil, err
	}
	current.log.Info("replay loaded", "path", path, "summary", rec.Summary(), "players", rec.NumPlayers)
	return rec, nil
}

func recorder() *export.Recorder {
	return export.NewRecorder(storage.New(current.cfg.ExportDir()), current.log)
}

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("view needs a terminal; try info or export")
	}
	rec, err := loadReplay(args[0])
	if err != nil {
		return err
	}

	m, err := viz.NewModel(viz.Options{
		Record:     rec,
		ReplayPath: args[0],
		Config:     current.cfg,
		Recorder:   recorder(),
		Log:        current.log.WithReplay(args[0]),
		Theme:      current.v.GetString("theme"),
	})
	if err != nil {
		return err
	}
	v := current.v
	return viz.Run(m, v.ConfigFileUsed(), func() (*config.Config, error) {
		return config.Reload(v)
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	rec, err := loadReplay(args[0])
	if err != nil {
		return err
	}
	return gui.Run(gui.Options{
		Record:     rec,
		ReplayPath: args[0],
		Config:     current.cfg,
		Recorder:   recorder(),
		Log:        current.log.WithReplay(args[0]),
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	rec, err := loadReplay(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, rec.Summary())
	for _, line := range rec.PlayerLines() {
		fmt.Fprintln(out, line)
	}
	if rec.NumPlayers == 0 {
		return nil
	}

	stats := metrics.Compute(rec)
	values := metrics.Summarize(stats, metrics.Standard(rec)...)

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tNAME\tFINAL CELLS\tMEAN SHARE\tPEAK STRENGTH\tLAST TURN")
	final := stats[len(stats)-1]
	for p := 1; p <= rec.NumPlayers; p++ {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.1f%%\t%.0f\t%.0f\n",
			p,
			rec.PlayerName(p),
			final.Players[p].Cells,
			100*values[fmt.Sprintf("p%d_share", p)],
			values[fmt.Sprintf("p%d_peak_strength", p)],
			values[fmt.Sprintf("p%d_last_turn", p)],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(stats) < 2 {
		return nil
	}
	series := make([][]float64, rec.NumPlayers)
	colors := []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Orange, asciigraph.Red, asciigraph.Yellow, asciigraph.Purple, asciigraph.Green}
	for p := 1; p <= rec.NumPlayers; p++ {
		series[p-1] = metrics.Series(stats, p, metrics.Cells)
	}
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(colors[:min(rec.NumPlayers, len(colors))]...),
		asciigraph.Caption("territory (cells) per player"),
	)
	fmt.Fprintf(out, "\n%s\n", graph)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	rec, err := loadReplay(args[0])
	if err != nil {
		return err
	}
	params, err := current.cfg.RenderParams()
	if err != nil {
		return err
	}
	req := export.Request{
		Record:     rec,
		ReplayPath: args[0],
		Turn:       turn,
		Format:     f,
		Params:     params,
	}

	if outPath == "-" {
		body, err := export.Encode(req)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}

	req.Destination = outPath
	if req.Destination == "" {
		ext := "." + string(f)
		if f == export.FormatText {
			ext = current.cfg.Export.Extension
		}
		req.Destination = storage.DefaultDestination(args[0], turn, ext)
	}
	res, err := recorder().Export(req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported turn %d to %s (%s)\n", turn, res.Destination, res.ID)
	return nil
}

func listExports(cmd *cobra.Command, args []string) error {
	st := storage.New(current.cfg.ExportDir())
	exports, err := st.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(exports) == 0 {
		fmt.Fprintln(out, "no exports found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREPLAY\tTURN\tFORMAT\tTIME\tDESTINATION")
	for _, e := range exports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			e.ID,
			e.Replay,
			e.Turn,
			e.Format,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Destination,
		)
	}
	return w.Flush()
}

func printSchema(cmd *cobra.Command, args []string) error {
	data, err := json.MarshalIndent(replay.Schema(), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if schemaOut != "" {
		return os.WriteFile(schemaOut, data, 0644)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func listPalettes(cmd *cobra.Command, args []string) error {
	return writePalettes(cmd.OutOrStdout(), current.cfg.Render.Palette)
}

func writePalettes(out io.Writer, active string) error {
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		var swatches strings.Builder
		for owner := 1; owner < len(p); owner++ {
			swatches.WriteString(lipgloss.NewStyle().Foreground(p[owner]).Render("██"))
		}
		marker := " "
		if name == active {
			marker = "*"
		}
		if _, err := fmt.Fprintf(out, "%s %-10s %s\n", marker, name, swatches.String()); err != nil {
			return err
		}
	}
	return nil
}
