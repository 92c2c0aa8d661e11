package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "plot.json")
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestRenderPNGFile(t *testing.T) {
	cfgPath := writeConfig(t, `{"title":"T","data":[{"fn":"sin(x)"}]}`)
	outPath := filepath.Join(t.TempDir(), "out.png")
	if err := renderPNGFile(cfgPath, outPath, 640, 400); err != nil {
		t.Fatalf("renderPNGFile failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 400 {
		t.Fatalf("raster size %v want 640x400", img.Bounds())
	}
}

func TestRenderPNGFile_BadConfig(t *testing.T) {
	cfgPath := writeConfig(t, `{broken`)
	outPath := filepath.Join(t.TempDir(), "out.png")
	if err := renderPNGFile(cfgPath, outPath, 640, 400); err == nil {
		t.Fatalf("expected error for malformed config")
	}
	if _, err := os.Stat(outPath); err == nil {
		t.Fatalf("no output should be written on failure")
	}
}

func TestRenderHTMLFile(t *testing.T) {
	cfgPath := writeConfig(t, `{"data":[{"fn":"x^2","label":"parabola"}]}`)
	outPath := filepath.Join(t.TempDir(), "out.html")
	if err := renderHTMLFile(cfgPath, outPath); err != nil {
		t.Fatalf("renderHTMLFile failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Contains(data, []byte("parabola")) {
		t.Fatalf("series label missing from HTML output")
	}
}

func TestResolveOptionsDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `{"fn":"x"}`))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	opts := resolveOptions(cfg, 800, 600)
	if opts.XDomain != [2]float64{-10, 10} || opts.YDomain != [2]float64{-10, 10} {
		t.Fatalf("default domains not applied: %v %v", opts.XDomain, opts.YDomain)
	}
	if opts.XLabel != "x" || opts.YLabel != "y" {
		t.Fatalf("default labels not applied: %q %q", opts.XLabel, opts.YLabel)
	}
	if !opts.Grid {
		t.Fatalf("legacy config must force grid on")
	}
}

func TestReplaceExt(t *testing.T) {
	if got := replaceExt("plots/wave.json", ".png"); got != "plots/wave.png" {
		t.Fatalf("replaceExt: %q", got)
	}
	if got := replaceExt("-", ".html"); got != "plot.html" {
		t.Fatalf("stdin default: %q", got)
	}
}
