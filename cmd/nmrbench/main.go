// Package main provides the nmrbench CLI entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nmrbench/cmd/nmrbench/config"
	"nmrbench/cmd/nmrbench/ui"
	"nmrbench/internal/ledger"
	"nmrbench/internal/numeric"
	"nmrbench/internal/residue"
)

const version = "1.2.0"

var (
	// Global flags
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nmrbench",
	Short: "nmrbench - NMR residue reference and purity calculator",
	Long: `nmrbench is a reference and calculation tool for proton NMR spectra.

It carries the table of chemical shifts of residual solvents and common
impurities in seven deuterated solvents, lets you filter it by residue
name, chemical shift and multiplicity, and computes the molar and weight
purity of a product from the integrals of its residue signals.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "nmrbench" && cmd.CalledAs() == "nmrbench" {
			logger = zap.NewNop()
			return nil
		}

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// residuesCmd filters the reference table from the command line
var residuesCmd = &cobra.Command{
	Use:   "residues",
	Short: "Print the common-residue table, optionally filtered",
	Long: `Prints the chemical shifts of common residues in the seven supported
deuterated solvents. A residue name substring takes precedence over the
shift filter; the shift filter consults only the selected solvent column.

Example:
  nmrbench residues --shift 2.09 --deviation 0.05 --solvent acetone_d6`,
	RunE: runResidues,
}

// purityCmd performs a one-shot purity calculation
var purityCmd = &cobra.Command{
	Use:   "purity",
	Short: "Compute product purity from residue integrals",
	Long: `Computes the molar and weight purity of a product from its molecular
weight and one residue spec per --residue flag, each formatted as
MOLWEIGHT:PROTONS:INTEGRAL with an optional :NAME suffix.

Example:
  nmrbench purity --product 200 --residue 60.052:3:3:AcOH`,
	RunE: runPurity,
}

// solventsCmd lists the solvent columns
var solventsCmd = &cobra.Command{
	Use:   "solvents",
	Short: "List the supported deuterated solvents",
	RunE:  runSolvents,
}

// sourcesCmd prints the literature sources of the dataset
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the literature sources of the shift data",
	RunE:  runSources,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nmrbench version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nmrbench %s\n", version)
	},
}

var (
	// residues flags
	filterName      string
	filterShift     string
	filterDeviation string
	filterMult      string
	filterSolvent   string

	// purity flags
	productMolWeight string
	residueSpecs     []string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	residuesCmd.Flags().StringVar(&filterName, "name", "", "residue name substring (case-insensitive)")
	residuesCmd.Flags().StringVar(&filterShift, "shift", "", "target chemical shift in ppm")
	residuesCmd.Flags().StringVar(&filterDeviation, "deviation", "", "tolerance window in ppm (default 0.1 when a shift is given)")
	residuesCmd.Flags().StringVar(&filterMult, "mult", "", "multiplicity (s, d, t, q, m)")
	residuesCmd.Flags().StringVar(&filterSolvent, "solvent", "", "solvent column to match against (default: last used)")

	purityCmd.Flags().StringVarP(&productMolWeight, "product", "p", "", "product molecular weight in g/mol (required)")
	purityCmd.Flags().StringArrayVarP(&residueSpecs, "residue", "r", nil, "residue as MOLWEIGHT:PROTONS:INTEGRAL[:NAME], repeatable")
	_ = purityCmd.MarkFlagRequired("product")

	rootCmd.AddCommand(residuesCmd)
	rootCmd.AddCommand(purityCmd)
	rootCmd.AddCommand(solventsCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadStyles() ui.Styles {
	cfg, _ := config.Load()
	if cfg.Theme == "dark" {
		return ui.NewStyles(ui.DarkTheme())
	}
	return ui.DefaultStyles()
}

func runResidues(cmd *cobra.Command, args []string) error {
	lib, err := residue.Load()
	if err != nil {
		return err
	}
	cfg, _ := config.Load()

	solvent := residue.Solvent(filterSolvent)
	if filterSolvent == "" {
		solvent = residue.Solvent(cfg.LastSolvent)
	}
	if !solvent.Valid() {
		return fmt.Errorf("unknown solvent %q (see 'nmrbench solvents')", filterSolvent)
	}

	deviation := filterDeviation
	if filterShift != "" && deviation == "" {
		deviation = residue.DefaultDeviation
	}
	filter := residue.Filter{
		Name:         filterName,
		Shift:        filterShift,
		Deviation:    deviation,
		Multiplicity: residue.Multiplicity(filterMult),
		Solvent:      solvent,
	}
	logger.Debug("filtering residue table",
		zap.String("name", filter.Name),
		zap.String("shift", filter.Shift),
		zap.String("solvent", string(filter.Solvent)))

	styles := loadStyles()
	fmt.Println(renderResidueTable(lib.Match(filter), filter, styles, nil))
	return nil
}

func runPurity(cmd *cobra.Command, args []string) error {
	led := ledger.New(logger)
	if !led.SetProductMolarMass(productMolWeight) {
		return fmt.Errorf("invalid product molecular weight %q", productMolWeight)
	}

	names := make(map[string]string)
	for _, spec := range residueSpecs {
		parts := strings.SplitN(spec, ":", 4)
		if len(parts) < 3 {
			return fmt.Errorf("invalid residue spec %q, want MOLWEIGHT:PROTONS:INTEGRAL[:NAME]", spec)
		}
		e := led.AddEntry()
		if !led.UpdateEntry(e.ID, ledger.FieldMolarMass, parts[0]) {
			return fmt.Errorf("invalid molecular weight in %q", spec)
		}
		if !led.UpdateEntry(e.ID, ledger.FieldProtons, parts[1]) {
			return fmt.Errorf("invalid proton count in %q", spec)
		}
		if !led.UpdateEntry(e.ID, ledger.FieldIntegral, parts[2]) {
			return fmt.Errorf("invalid integral in %q", spec)
		}
		if len(parts) == 4 {
			names[e.ID] = parts[3]
		}
	}

	styles := loadStyles()
	table := ui.NewTable("", []string{"", "Mol. weight", "Protons", "Integral", "mol%", "wt%"})
	product := led.Product()
	table.AddRow(
		styles.Bold.Render("Product"),
		string(product.MolarMass),
		"", "",
		numeric.Percent(product.Purity.Mol),
		numeric.Percent(product.Purity.Wt),
	)
	for _, e := range led.Entries() {
		name := names[e.ID]
		if name == "" {
			name = "Residue"
		}
		table.AddRow(
			name,
			string(e.MolarMass),
			string(e.Protons),
			string(e.Integral),
			numeric.Percent(e.Purity.Mol),
			numeric.Percent(e.Purity.Wt),
		)
	}
	fmt.Println(table.View(styles))

	if !product.Purity.Defined() {
		fmt.Println(styles.Muted.Render("Purity is undefined without a valid nonzero product molecular weight."))
	}
	return nil
}

func runSolvents(cmd *cobra.Command, args []string) error {
	styles := loadStyles()
	table := ui.NewTable("Supported solvents", []string{"Identifier", "Name"})
	for _, s := range residue.Solvents() {
		table.AddRow(string(s), s.Label())
	}
	fmt.Println(table.View(styles))
	return nil
}

func runSources(cmd *cobra.Command, args []string) error {
	lib, err := residue.Load()
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString("# Data sources\n\n")
	sb.WriteString("The chemical shift values of the common residues were taken from:\n\n")
	for _, src := range lib.Sources() {
		sb.WriteString("- " + src + "\n")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}
	out, err := renderer.Render(sb.String())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
