package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padd/pkg/window"
)

type windowOpts struct {
	lines          int
	lineHeight     float64
	top            float64
	viewportHeight float64
	buffer         float64
	json           bool
}

// windowCommand creates the window command for computing the visible row
// range of a scrolled container.
func (c *CLI) windowCommand() *cobra.Command {
	opts := windowOpts{buffer: window.DefaultBuffer}

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute the visible row range for a scroll position",
		Long: `Compute which rows of a row overlay intersect the viewport plus a buffer.

--top is the container's top edge relative to the viewport top; it is
negative once the container has scrolled past the top of the viewport.`,
		Example: `  padd window --lines 100 --line-height 8 --top -400 --viewport-height 800`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("viewport-height") || !flags.Changed("line-height") || !flags.Changed("buffer") {
				s, _, err := c.loadSettings(cmd.Context())
				if err != nil {
					return err
				}
				if !flags.Changed("viewport-height") {
					opts.viewportHeight = s.Viewport.Height
				}
				if !flags.Changed("line-height") {
					opts.lineHeight = s.BaseUnit
				}
				if !flags.Changed("buffer") {
					opts.buffer = s.Window.Buffer
				}
			}
			return runWindow(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 0, "total number of rows")
	cmd.Flags().Float64Var(&opts.lineHeight, "line-height", 0, "row height in px (default base unit)")
	cmd.Flags().Float64Var(&opts.top, "top", 0, "container top relative to the viewport top, in px")
	cmd.Flags().Float64Var(&opts.viewportHeight, "viewport-height", 0, "viewport height in px (default from config)")
	cmd.Flags().Float64Var(&opts.buffer, "buffer", opts.buffer, "rows rendered beyond the viewport, in px")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("lines")

	return cmd
}

func runWindow(cmd *cobra.Command, opts windowOpts) error {
	r := window.ComputeVisibleRange(opts.lines, opts.lineHeight, opts.top, opts.viewportHeight, opts.buffer)
	loggerFromContext(cmd.Context()).Debug("computed visible range",
		"lines", opts.lines, "line_height", opts.lineHeight, "top", opts.top, "start", r.Start, "end", r.End)

	w := cmd.OutOrStdout()
	if opts.json {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	printKeyValue(w, "start", StyleNumber.Render(fmt.Sprint(r.Start)))
	printKeyValue(w, "end", StyleNumber.Render(fmt.Sprint(r.End)))
	printKeyValue(w, "rendered", fmt.Sprintf("%d of %d rows", r.Len(), opts.lines))
	return nil
}
