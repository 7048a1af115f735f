// Command medallion generates a decorative medallion STL: a convex
// disc with concentric ridge rings and radial leaf ornaments.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unixpickle/essentials"

	"github.com/stigsb/rumi-leaf/pkg/config"
	"github.com/stigsb/rumi-leaf/pkg/export"
	"github.com/stigsb/rumi-leaf/pkg/logger"
	"github.com/stigsb/rumi-leaf/pkg/model"
)

func main() {
	defaults := config.Default()

	var (
		preset     string
		diameter   float64
		convexity  float64
		resolution int
		ornaments  int
		logLevel   string
		logFile    string
	)
	flag.StringVar(&preset, "preset", "", "YAML preset file")
	flag.Float64Var(&diameter, "diameter", defaults.Medallion.Diameter, "medallion diameter in mm")
	flag.Float64Var(&convexity, "convexity", defaults.Medallion.Convexity, "center lift, 0 flat to 1 doubled")
	flag.IntVar(&resolution, "resolution", defaults.Medallion.Resolution, "grid cells across the diameter")
	flag.IntVar(&ornaments, "ornaments", defaults.Medallion.OrnamentCount, "number of radial leaf ornaments")
	flag.StringVar(&logLevel, "log-level", defaults.Log.Level, "debug, info, warn or error")
	flag.StringVar(&logFile, "log-file", defaults.Log.File, "optional rotated log file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: medallion [flags] output.stl")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	outPath := flag.Arg(0)

	cfg := defaults
	if preset != "" {
		var err error
		cfg, err = config.Load(preset)
		essentials.Must(err)
	}
	p := cfg.MedallionParams()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "diameter":
			p.Diameter = diameter
		case "convexity":
			p.Convexity = convexity
		case "resolution":
			p.Resolution = resolution
		case "ornaments":
			p.OrnamentCount = ornaments
		case "log-level":
			cfg.Log.Level = logLevel
		case "log-file":
			cfg.Log.File = logFile
		}
	})

	log := logger.New(cfg.Log.Level, cfg.Log.File).Sugar()
	defer log.Sync()

	res, err := model.GenerateMedallion(p, log)
	if err != nil {
		essentials.Die("medallion:", err)
	}
	essentials.Must(export.SaveSTL(outPath, res.Mesh))
	log.Infow("wrote STL", "path", outPath, "faces", res.Mesh.FaceCount(), "watertight", res.Watertight)
}
