package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/measure"
	"github.com/matzehuels/padd/pkg/units"
)

type normalizeOpts struct {
	base     float64
	quiet    bool
	viewport string // WxH
	json     bool
}

// normalizeRow is one normalized measurement.
type normalizeRow struct {
	Value      string  `json:"value"`
	Normalized float64 `json:"normalized"`
	Moved      bool    `json:"moved"`
}

// normalizeCommand creates the normalize command for snapping measurements
// to the base unit.
func (c *CLI) normalizeCommand() *cobra.Command {
	var opts normalizeOpts

	cmd := &cobra.Command{
		Use:   "normalize <value>...",
		Short: "Snap measurements to multiples of the base unit",
		Example: `  padd normalize 103px --base 8
  padd normalize 1.3rem 50vh auto --viewport 390x844`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := c.loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			ctx := s.Context()
			if opts.viewport != "" {
				w, h, err := parseSize(opts.viewport)
				if err != nil {
					return fmt.Errorf("--viewport: %w", err)
				}
				ctx.ViewportWidth, ctx.ViewportHeight = w, h
			}
			base := s.BaseUnit
			if cmd.Flags().Changed("base") {
				base = opts.base
			}
			sys := measure.System{BaseUnit: base, Context: &ctx, Logger: loggerFromContext(cmd.Context())}
			return runNormalize(cmd, sys, args, opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.base, "base", "b", measure.DefaultBaseUnit, "base unit in px")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress warnings for values that were moved")
	cmd.Flags().StringVar(&opts.viewport, "viewport", "", "viewport size for vw/vh units, e.g. 1280x800")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")

	return cmd
}

func runNormalize(cmd *cobra.Command, sys measure.System, values []string, opts normalizeOpts) error {
	var callOpts []measure.Option
	if opts.quiet {
		callOpts = append(callOpts, measure.WithSuppressWarnings())
	}

	rows := make([]normalizeRow, len(values))
	for i, v := range values {
		n := sys.NormalizeString(v, callOpts...)
		moved := true
		if parsed, err := units.Parse(v); err == nil {
			moved = !sys.IsNormalized(parsed, measure.WithSuppressWarnings())
		}
		rows[i] = normalizeRow{Value: v, Normalized: n, Moved: moved}
	}

	w := cmd.OutOrStdout()
	if opts.json {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(rows) == 1 {
		fmt.Fprintln(w, units.FormatNumber(rows[0].Normalized)+"px")
		return nil
	}
	table := make([][]string, len(rows))
	for i, r := range rows {
		status := StyleSuccess.Render(iconSuccess)
		if r.Moved {
			status = StyleWarning.Render("moved")
		}
		table[i] = []string{r.Value, units.FormatNumber(r.Normalized) + "px", status}
	}
	fmt.Fprintln(w, renderTable([]string{"value", "normalized", ""}, table))
	printInfo(w, "base unit %spx", units.FormatNumber(sys.Unit()))
	return nil
}

// parseSize parses "WxH" into two positive pixel sizes.
func parseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, perrors.New(perrors.ErrCodeInvalidInput, "size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil || w <= 0 {
		return 0, 0, perrors.New(perrors.ErrCodeInvalidInput, "size %q: invalid width", s)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil || h <= 0 {
		return 0, 0, perrors.New(perrors.ErrCodeInvalidInput, "size %q: invalid height", s)
	}
	return w, h, nil
}
