package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padd/pkg/config"
	"github.com/matzehuels/padd/pkg/grid"
	"github.com/matzehuels/padd/pkg/units"
)

// calcOpts holds the flags of the calc command. Flags left unset keep the
// value from the config file.
type calcOpts struct {
	width       float64
	variant     string
	gap         string
	columns     int
	columnWidth string
	pattern     string // space or comma separated tokens
	base        float64
	align       string
	json        bool
}

// calcOutput is the --json document.
type calcOutput struct {
	Width  float64      `json:"width"`
	Result grid.Result  `json:"result"`
	Tracks []grid.Track `json:"tracks,omitempty"`
}

// calcCommand creates the calc command for computing a column template.
func (c *CLI) calcCommand() *cobra.Command {
	var opts calcOpts

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the column template for a container width",
		Example: `  padd calc --width 1000 --variant auto --column-width 100px --gap 16
  padd calc --width 1200 --variant pattern --pattern "1fr 2fr 1fr" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			s, err = opts.apply(cmd, s)
			if err != nil {
				return err
			}
			return runCalc(cmd, s, opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "container width in px (default viewport width)")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "column variant: line, pattern, fixed, auto")
	cmd.Flags().StringVar(&opts.gap, "gap", "", "gap between columns (e.g. 16, 1rem)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "column count (fixed)")
	cmd.Flags().StringVar(&opts.columnWidth, "column-width", "", "column width (fixed, auto)")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "column track sizes (pattern), e.g. \"1fr 2fr 1fr\"")
	cmd.Flags().Float64Var(&opts.base, "base", 0, "base unit in px")
	cmd.Flags().StringVar(&opts.align, "align", "", "track alignment: start, center, end")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")

	return cmd
}

// apply overrides settings with the flags that were set.
func (o calcOpts) apply(cmd *cobra.Command, s config.Settings) (config.Settings, error) {
	flags := cmd.Flags()
	if flags.Changed("variant") {
		s.XGrid.Variant = o.variant
	}
	if flags.Changed("gap") {
		v, err := units.Parse(o.gap)
		if err != nil {
			return s, fmt.Errorf("--gap: %w", err)
		}
		s.XGrid.Gap = v
	}
	if flags.Changed("columns") {
		s.XGrid.Columns = o.columns
	}
	if flags.Changed("column-width") {
		v, err := units.Parse(o.columnWidth)
		if err != nil {
			return s, fmt.Errorf("--column-width: %w", err)
		}
		s.XGrid.ColumnWidth = v
	}
	if flags.Changed("pattern") {
		s.XGrid.Pattern = splitList(o.pattern)
	}
	if flags.Changed("base") {
		s.BaseUnit = o.base
	}
	if flags.Changed("align") {
		s.Align = o.align
	}
	s = s.WithDefaults()
	return s, s.Validate()
}

func runCalc(cmd *cobra.Command, s config.Settings, opts calcOpts) error {
	logger := loggerFromContext(cmd.Context())
	w := cmd.OutOrStdout()

	width := opts.width
	if width <= 0 {
		width = s.Viewport.Width
	}
	cfg, err := s.GridConfig()
	if err != nil {
		return err
	}
	align, err := grid.ParseAlign(s.Align)
	if err != nil {
		return err
	}

	gridOpts := []grid.Option{grid.WithBaseUnit(s.BaseUnit), grid.WithContext(s.Context())}
	res := grid.Calculate(width, cfg, gridOpts...)
	tracks := grid.Tracks(width, cfg, align, gridOpts...)
	logger.Debug("calculated grid", "variant", cfg.Variant(), "width", width, "columns", res.ColumnCount, "valid", res.Valid)

	if opts.json {
		data, err := json.MarshalIndent(calcOutput{Width: width, Result: res, Tracks: tracks}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s grid at %spx", cfg.Variant(), units.FormatNumber(width))))
	printGridResult(w, res)
	if len(tracks) > 0 {
		fmt.Fprintln(w, renderTable([]string{"#", "x", "width", "right"}, trackRows(tracks)))
	}
	return nil
}

// splitList splits on commas and whitespace.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
}
