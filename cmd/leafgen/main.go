// Command leafgen turns a leaf photograph (PNG with transparency) into
// a watertight 3D-printable relief STL.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unixpickle/essentials"

	"github.com/stigsb/rumi-leaf/pkg/config"
	"github.com/stigsb/rumi-leaf/pkg/export"
	"github.com/stigsb/rumi-leaf/pkg/heightmap"
	"github.com/stigsb/rumi-leaf/pkg/logger"
	"github.com/stigsb/rumi-leaf/pkg/model"
)

func main() {
	defaults := config.Default()

	var (
		preset         string
		scaleXY        float64
		scaleZ         float64
		base           float64
		stride         int
		alphaThreshold float64
		logLevel       string
		logFile        string
	)
	flag.StringVar(&preset, "preset", "", "YAML preset file")
	flag.Float64Var(&scaleXY, "scale-xy", defaults.Leaf.ScaleXY, "output width/height in mm")
	flag.Float64Var(&scaleZ, "scale-z", defaults.Leaf.ScaleZ, "relief height in mm")
	flag.Float64Var(&base, "base", defaults.Leaf.BaseThickness, "base slab thickness in mm")
	flag.IntVar(&stride, "stride", defaults.Leaf.Stride, "pixel downsampling factor")
	flag.Float64Var(&alphaThreshold, "alpha-threshold", defaults.Leaf.AlphaThreshold, "alpha cutoff for leaf pixels")
	flag.StringVar(&logLevel, "log-level", defaults.Log.Level, "debug, info, warn or error")
	flag.StringVar(&logFile, "log-file", defaults.Log.File, "optional rotated log file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: leafgen [flags] input.png output.stl")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	imagePath := flag.Arg(0)
	outPath := flag.Arg(1)

	cfg := defaults
	if preset != "" {
		var err error
		cfg, err = config.Load(preset)
		essentials.Must(err)
	}
	p := cfg.LeafParams()
	// Explicit flags win over the preset.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale-xy":
			p.ScaleXY = scaleXY
		case "scale-z":
			p.ScaleZ = scaleZ
		case "base":
			p.BaseThickness = base
		case "stride":
			p.Stride = stride
		case "alpha-threshold":
			p.AlphaThreshold = alphaThreshold
		case "log-level":
			cfg.Log.Level = logLevel
		case "log-file":
			cfg.Log.File = logFile
		}
	})

	log := logger.New(cfg.Log.Level, cfg.Log.File).Sugar()
	defer log.Sync()

	height, alpha, err := heightmap.LoadImage(imagePath)
	essentials.Must(err)

	res, err := model.GenerateLeaf(height, alpha, p, log)
	if err != nil {
		essentials.Die("leafgen:", err)
	}
	essentials.Must(export.SaveSTL(outPath, res.Mesh))
	log.Infow("wrote STL", "path", outPath, "faces", res.Mesh.FaceCount(), "watertight", res.Watertight)
}
