package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lcary/tide-tracker/internal/render"
)

var (
	exportPNGPath string
	exportWidth   int
	exportHeight  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the tide series as a PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()

		series := newService(c).GetCurrentSeries(cmd.Context(), time.Now())
		series = series.WithDatum(c.Station.MSLOffsetFt, c.Station.ShowMSL)

		width, height := exportWidth, exportHeight
		if width <= 0 {
			width = c.Display.Width
		}
		if height <= 0 {
			height = c.Display.Height
		}

		out, err := os.Create(exportPNGPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportPNGPath, err)
		}

		if err := render.WritePNG(series, width, height, out); err != nil {
			out.Close()
			os.Remove(exportPNGPath)
			return err
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", exportPNGPath, err)
		}

		log.Info().
			Str("path", exportPNGPath).
			Str("source", string(series.Source)).
			Msg("Exported PNG chart")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "tide.png", "Path to write PNG chart")
	exportCmd.Flags().IntVar(&exportWidth, "width", 0, "Chart width in pixels (defaults to display.width)")
	exportCmd.Flags().IntVar(&exportHeight, "height", 0, "Chart height in pixels (defaults to display.height)")
}
