package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/photoedit/pkg/config"
	"github.com/go-drift/photoedit/pkg/graphics"
	"github.com/go-drift/photoedit/pkg/tools"
	"github.com/go-drift/photoedit/pkg/watermark"
)

type watermarkOpts struct {
	in, out    string
	configPath string
	font       string
	text       string
	fontSize   float64
	alpha      float64
	color      string
	swatch     int
	blend      string
}

func newWatermarkCmd() *cobra.Command {
	opts := watermarkOpts{}

	cmd := &cobra.Command{
		Use:   "watermark",
		Short: "Tile a diagonal text watermark across a photo",
		Long: `Render the text as a repeating pattern rotated 45 degrees over the whole
photo, with alternate rows offset by half a tile.

Unset options take their defaults from the config file, if any.`,
		Example: `  photoedit watermark --in photo.jpg --out marked.png --text "DRAFT" --alpha 0.6
  photoedit watermark --in photo.jpg --out marked.jpg --swatch 0 --config editor.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return guarded("cmd.watermark", func() error { return runWatermark(cmd, opts) })
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.in, "in", "", "input image")
	f.StringVar(&opts.out, "out", "", "output image (format from extension)")
	f.StringVar(&opts.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	f.StringVar(&opts.font, "font", "", "font file for the text (default from config, then the bundled font)")
	f.StringVar(&opts.text, "text", "", "watermark text")
	f.Float64Var(&opts.fontSize, "font-size", 0, "font size, clamped to the configured range")
	f.Float64Var(&opts.alpha, "alpha", 0, "text opacity in [0, 1]")
	f.StringVar(&opts.color, "color", "", "text colour as #rrggbb")
	f.IntVar(&opts.swatch, "swatch", -1, "palette index to use as the text colour")
	f.StringVar(&opts.blend, "blend", graphics.BlendModeSoftLight.String(), "mode used to composite the watermark onto the photo")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runWatermark(cmd *cobra.Command, opts watermarkOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return err
	}
	state, err := tools.NewState(cfg)
	if err != nil {
		return err
	}
	if err := applyToolFlags(cmd, state, opts); err != nil {
		return err
	}
	blend, err := graphics.ParseBlendMode(opts.blend)
	if err != nil {
		return err
	}
	fonts, err := loadFonts(cfg, opts.font, state.Text(), logger)
	if err != nil {
		return err
	}

	photo, err := loadImage(opts.in)
	if err != nil {
		return err
	}
	size := graphics.RectFromImage(photo.Bounds()).Size()
	logger.Debug("loaded image", "path", opts.in, "width", size.Width, "height", size.Height)

	layer := watermark.NewLayer(watermark.NewRenderer(fonts))
	state.Bind(layer)
	layer.Layout(size)

	canvas := graphics.NewTransparentCanvas(photo.Bounds().Dx(), photo.Bounds().Dy())
	layer.Paint(canvas)
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	graphics.BlendLayer(photo, canvas.Image(), blend)

	if err := saveImage(opts.out, photo); err != nil {
		return err
	}
	p := state.Params()
	prog.done("Watermarked "+opts.out, "tiles", layer.Tiles().Len(), "font_size", p.FontSize, "alpha", p.Alpha, "color", p.Color.Hex())
	return nil
}

// applyToolFlags feeds explicitly set flags through the toolbar state so they
// are clamped the same way as interactive edits.
func applyToolFlags(cmd *cobra.Command, state *tools.State, opts watermarkOpts) error {
	f := cmd.Flags()
	if f.Changed("text") {
		state.SetText(opts.text)
	}
	if f.Changed("font-size") {
		state.SetFontSize(opts.fontSize)
	}
	if f.Changed("alpha") {
		state.SetAlpha(opts.alpha)
	}
	if f.Changed("swatch") {
		if _, ok := state.SelectIndex(opts.swatch); !ok {
			return fmt.Errorf("--swatch %d out of range (palette has %d colours)", opts.swatch, len(state.Palette()))
		}
	}
	if f.Changed("color") {
		c, err := graphics.ParseHex(opts.color)
		if err != nil {
			return fmt.Errorf("--color: %w", err)
		}
		state.SelectColor(c)
	}
	return nil
}
