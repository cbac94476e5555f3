package cli

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lcary/tide-tracker/internal/config"
	"github.com/lcary/tide-tracker/internal/epd"
	"github.com/lcary/tide-tracker/internal/models"
	"github.com/lcary/tide-tracker/internal/render"
)

var (
	renderStdout bool
	textWidth    int
	textHeight   int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Acquire the tide series and draw it once",
	Long: "Acquires the 24-hour tide series (cache, then live NOAA data, then\n" +
		"the built-in approximation) and draws it to the e-paper panel, or to\n" +
		"the terminal with --stdout. Acquisition problems degrade the data\n" +
		"source; only a failure to draw exits nonzero.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Render to the terminal instead of the e-paper panel")
	renderCmd.Flags().IntVar(&textWidth, "text-width", 73, "Terminal chart width in columns")
	renderCmd.Flags().IntVar(&textHeight, "text-height", 26, "Terminal chart height in rows")

	// The bare root command reuses these flags.
	rootCmd.Flags().AddFlagSet(renderCmd.Flags())
}

func runRender(cmd *cobra.Command) error {
	c := getConfig()

	series := newService(c).GetCurrentSeries(cmd.Context(), time.Now())
	series = series.WithDatum(c.Station.MSLOffsetFt, c.Station.ShowMSL)

	log.Info().
		Str("source", string(series.Source)).
		Str("station_id", c.Station.ID).
		Msg("Rendering tide series")

	if renderStdout {
		return renderText(cmd, series)
	}
	return renderPanel(c, series)
}

// renderText draws to a character grid on the command's stdout. One text
// row of margin top and bottom leaves room for the offline indicator and
// the axis labels.
func renderText(cmd *cobra.Command, series models.Series) error {
	grid := render.NewTextGrid(textWidth, textHeight, cmd.OutOrStdout())
	if err := render.New(1, 1).Draw(series, grid); err != nil {
		return err
	}
	return grid.Flush()
}

// renderPanel draws to an offscreen bitmap sized to the panel and pushes
// the frame only if every primitive succeeded, so a broken frame never
// replaces the last good one on the display.
func renderPanel(c *config.Config, series models.Series) error {
	display, err := epd.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := display.Close(); err != nil {
			log.Warn().Err(err).Msg("Closing display failed")
		}
	}()

	bounds := display.Bounds()
	bitmap := render.NewBitmap(bounds.Dx(), bounds.Dy())

	margin := c.Display.FontHeight
	if err := render.New(margin, margin).Draw(series, bitmap); err != nil {
		return err
	}

	return display.Push(bitmap.Image())
}
