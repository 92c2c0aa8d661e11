// Package main provides the headless CLI for rendering plot configs.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plotpad/plotpad/src/plotcfg"
	"github.com/plotpad/plotpad/src/plotengine"
	"github.com/plotpad/plotpad/src/plotexport"
	"github.com/plotpad/plotpad/src/plotlog"
)

var (
	outputPath  string
	width       int
	height      int
	asciiHeight int
	logLevel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plotpadrender",
		Short: "Render plot configs without a window",
		Long: `plotpadrender reads the same JSON plot configs as the PlotPad viewer
and renders them to PNG, standalone HTML, or a terminal preview.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			plotlog.SetLevel(viper.GetString("log"))
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level: debug, info, warn, error")
	viper.SetEnvPrefix("PLOTPAD")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))

	pngCmd := &cobra.Command{
		Use:   "png [config.json]",
		Short: "Render the config to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputPath
			if out == "" {
				out = replaceExt(args[0], ".png")
			}
			return renderPNGFile(args[0], out, viper.GetInt("width"), viper.GetInt("height"))
		},
	}
	pngCmd.Flags().IntVar(&width, "width", 1024, "Raster width in pixels")
	pngCmd.Flags().IntVar(&height, "height", 640, "Raster height in pixels")
	pngCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: input name with .png)")
	_ = viper.BindPFlag("width", pngCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("height", pngCmd.Flags().Lookup("height"))

	htmlCmd := &cobra.Command{
		Use:   "html [config.json]",
		Short: "Render the config to an interactive HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputPath
			if out == "" {
				out = replaceExt(args[0], ".html")
			}
			return renderHTMLFile(args[0], out)
		},
	}
	htmlCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: input name with .html)")

	asciiCmd := &cobra.Command{
		Use:   "ascii [config.json]",
		Short: "Preview the config's expression series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			out, err := plotexport.RenderASCII(cfg, asciiHeight)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	asciiCmd.Flags().IntVar(&asciiHeight, "height", 12, "Preview height in rows")

	rootCmd.AddCommand(pngCmd, htmlCmd, asciiCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads, normalizes and processes a plot config file. "-" reads
// from stdin.
func loadConfig(path string) (*plotcfg.PlotConfig, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = readAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	nc, err := plotcfg.Normalize(string(data))
	if err != nil {
		return nil, err
	}
	return plotcfg.Process(nc), nil
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resolveOptions applies the viewer's draw defaults so the headless output
// matches what the window would show.
func resolveOptions(cfg *plotcfg.PlotConfig, w, h int) plotengine.Options {
	opts := plotengine.Options{
		Width:   w,
		Height:  h,
		Title:   cfg.Title,
		Grid:    cfg.Grid,
		XDomain: plotcfg.DefaultDomain(),
		YDomain: plotcfg.DefaultDomain(),
		XLabel:  "x",
		YLabel:  "y",
		Series:  cfg.Series,
	}
	if cfg.XAxis.Domain != nil {
		opts.XDomain = *cfg.XAxis.Domain
	}
	if cfg.YAxis.Domain != nil {
		opts.YDomain = *cfg.YAxis.Domain
	}
	if cfg.XAxis.Label != "" {
		opts.XLabel = cfg.XAxis.Label
	}
	if cfg.YAxis.Label != "" {
		opts.YLabel = cfg.YAxis.Label
	}
	return opts
}

func renderPNGFile(cfgPath, outPath string, w, h int) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	plot, err := plotengine.Render(resolveOptions(cfg, w, h))
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	defer plot.Release()
	var buf bytes.Buffer
	if err := plot.EncodePNG(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	plotlog.Infof("wrote %s (%dx%d)", outPath, w, h)
	return nil
}

func renderHTMLFile(cfgPath, outPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()
	if err := plotexport.WriteHTML(cfg, f); err != nil {
		return fmt.Errorf("html export failed: %w", err)
	}
	plotlog.Infof("wrote %s", outPath)
	return nil
}

// replaceExt swaps the file extension, defaulting sensibly for "-" (stdin).
func replaceExt(path, ext string) string {
	if path == "-" {
		return "plot" + ext
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + ext
}
