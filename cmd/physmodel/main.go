package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/physmodel/internal/config"
	"github.com/san-kum/physmodel/internal/experiment"
	"github.com/san-kum/physmodel/internal/logging"
	"github.com/san-kum/physmodel/internal/physmodel"
	"github.com/san-kum/physmodel/internal/storage"
)

var (
	dataDir    string
	preset     string
	instance   string
	fallback   bool
	save       bool
	plot       bool
	exportPath string
	setArgs    map[string]string
)

func main() {
	logging.ConfigureRuntime()

	rootCmd := &cobra.Command{
		Use:          "physmodel",
		Short:        "physical model registry and admissibility checks",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physmodel", "report directory")

	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "list registered physical models",
		Args:  cobra.NoArgs,
		RunE:  listProviders,
	}

	describeCmd := &cobra.Command{
		Use:   "describe [model]",
		Short: "show a model's contract values and options",
		Args:  cobra.ExactArgs(1),
		RunE:  describeModel,
	}
	describeCmd.Flags().StringToStringVar(&setArgs, "set", nil, "configuration key=value pairs")

	checkCmd := &cobra.Command{
		Use:   "check [case-file]",
		Short: "validate the states of a case against its physical model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkCase,
	}
	checkCmd.Flags().StringVar(&preset, "preset", "", "use a preset case as model/preset")
	checkCmd.Flags().StringVar(&instance, "instance", "", "override the instance name")
	checkCmd.Flags().BoolVar(&fallback, "fallback", false, "fall back to the Null model on selection errors")
	checkCmd.Flags().BoolVar(&save, "save", false, "save the report")
	checkCmd.Flags().BoolVar(&plot, "plot", false, "plot the first unknown of every state")
	checkCmd.Flags().StringVar(&exportPath, "export", "", "export the full result as JSON")

	reportsCmd := &cobra.Command{
		Use:   "reports",
		Short: "list saved reports",
		Args:  cobra.NoArgs,
		RunE:  listReports,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Println(titleStyle.Render("presets for " + args[0]))
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(providersCmd, describeCmd, checkCmd, reportsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listProviders(cmd *cobra.Command, args []string) error {
	r := physmodel.DefaultRegistry()

	fmt.Println(titleStyle.Render("physical models (" + physmodel.Library + ")"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tEQS\tCONVECTIVE\tDIFFUSIVE\tSOURCE")

	for _, name := range physmodel.Names(r) {
		m, err := physmodel.New(r, name, "")
		if err != nil {
			return err
		}
		if err := m.Configure(config.Args{}); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			name,
			m.Dimension(),
			m.NbEquations(),
			m.ConvectiveName(),
			m.DiffusiveName(),
			m.SourceName(),
		)
	}

	return w.Flush()
}

func describeModel(cmd *cobra.Command, args []string) error {
	m, err := physmodel.New(physmodel.DefaultRegistry(), args[0], "")
	if err != nil {
		return err
	}
	if err := m.Configure(config.Args(setArgs)); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(m.Name()))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", labelStyle.Render("dimension"), m.Dimension())
	fmt.Fprintf(w, "%s\t%d\n", labelStyle.Render("equations"), m.NbEquations())
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("convective"), m.ConvectiveName())
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("diffusive"), m.DiffusiveName())
	fmt.Fprintf(w, "%s\t%s\n", labelStyle.Render("source"), m.SourceName())
	if err := w.Flush(); err != nil {
		return err
	}

	d, ok := m.(physmodel.Describer)
	if !ok || len(d.Options()) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("options"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tDEFAULT\tDESCRIPTION")
	for _, opt := range d.Options() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", opt.Name, opt.Default, opt.Description)
	}
	return w.Flush()
}

func loadCase(args []string) (*config.Case, error) {
	if preset != "" {
		model, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be model/preset, got %q", preset)
		}
		c := config.GetPreset(model, name)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		return c, nil
	}
	if len(args) == 0 {
		return config.DefaultCase(), nil
	}
	return config.Load(args[0])
}

func checkCase(cmd *cobra.Command, args []string) error {
	c, err := loadCase(args)
	if err != nil {
		return err
	}
	if instance != "" {
		c.Instance = instance
	}
	if fallback {
		c.Fallback = true
	}

	exp := experiment.New(experiment.FromCase(c), physmodel.DefaultRegistry(), log.Logger)
	if err := exp.Setup(); err != nil {
		return err
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	printResult(result)

	if plot {
		plotFirstUnknown(result)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		reportID, err := st.Save(result)
		if err != nil {
			return err
		}
		fmt.Printf("saved report: %s\n", reportID)
	}

	if exportPath != "" {
		if err := storage.ExportJSON(exportPath, result); err != nil {
			return err
		}
		fmt.Printf("exported to: %s\n", exportPath)
	}

	return nil
}

func printResult(result *experiment.Result) {
	header := fmt.Sprintf("%s (%s)", result.Model, result.Instance)
	fmt.Println(titleStyle.Render(header))
	if result.FellBack {
		fmt.Println(warnStyle.Render("selected model unavailable, using Null"))
	}

	fmt.Printf("%s %d  %s %d\n",
		labelStyle.Render("dimension"), result.Dimension,
		labelStyle.Render("equations"), result.NbEquations)
	fmt.Printf("%s %s  %s %s  %s %s\n",
		labelStyle.Render("convective"), result.Convective,
		labelStyle.Render("diffusive"), result.Diffusive,
		labelStyle.Render("source"), result.Source)

	if len(result.PhysicalData) > 0 {
		keys := make([]string, 0, len(result.PhysicalData))
		for k := range result.PhysicalData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		for _, k := range keys {
			fmt.Printf("  %-16s %g\n", k, result.PhysicalData[k])
		}
	}

	if len(result.States) == 0 {
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSTATE\tVERDICT")
	for i, s := range result.States {
		fmt.Fprintf(w, "%d\t%v\t%s\n", i, []float64(s), verdict(result.Valid[i]))
	}
	w.Flush()

	fmt.Printf("\n%d checked, %d rejected\n", len(result.Valid), result.Rejected)
}

func plotFirstUnknown(result *experiment.Result) {
	data := make([]float64, 0, len(result.States))
	for _, s := range result.States {
		if len(s) == 0 || !physmodel.State(s[:1]).IsFinite() {
			continue
		}
		data = append(data, s[0])
	}
	if len(data) < 2 {
		fmt.Println("not enough finite states to plot")
		return
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("x0 across states"),
	)
	fmt.Println()
	fmt.Println(graph)
}

func listReports(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	reports, err := st.List()
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Println("no reports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tINSTANCE\tTIME\tCHECKED\tREJECTED")

	for _, rep := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			rep.ID,
			rep.Model,
			rep.Instance,
			rep.Timestamp.Format("2006-01-02 15:04:05"),
			rep.Checked,
			rep.Rejected,
		)
	}

	return w.Flush()
}
