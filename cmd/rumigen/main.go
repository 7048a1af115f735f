// Command rumigen evaluates a Lisp scene script and renders every job
// it declares to STL. Script errors are reported with line numbers and
// a non-zero exit.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unixpickle/essentials"
	"go.uber.org/zap"

	"github.com/stigsb/rumi-leaf/pkg/engine"
	"github.com/stigsb/rumi-leaf/pkg/export"
	"github.com/stigsb/rumi-leaf/pkg/heightmap"
	"github.com/stigsb/rumi-leaf/pkg/logger"
	"github.com/stigsb/rumi-leaf/pkg/model"
)

func main() {
	var (
		outDir   string
		logLevel string
		logFile  string
	)
	flag.StringVar(&outDir, "out", ".", "directory for generated STL files")
	flag.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&logFile, "log-file", "", "optional rotated log file")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: rumigen [flags] scene.rumi")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	scriptPath := flag.Arg(0)

	log := logger.New(logLevel, logFile).Sugar()
	defer log.Sync()

	source, err := os.ReadFile(scriptPath)
	essentials.Must(err)

	scene, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	essentials.Must(err)
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", scriptPath, e.Error())
		}
		os.Exit(1)
	}
	if len(scene.Jobs) == 0 {
		log.Warnw("scene declares no jobs", "script", scriptPath)
		return
	}

	for i, job := range scene.Jobs {
		log.Infow("running job", "index", i, "kind", job.Kind.String(), "output", job.Output)
		res, err := runJob(job, log)
		if err != nil {
			essentials.Die(fmt.Sprintf("job %d (%s):", i, job.Kind), err)
		}
		outPath := filepath.Join(outDir, job.Output)
		essentials.Must(export.SaveSTL(outPath, res.Mesh))
		log.Infow("wrote STL", "path", outPath, "faces", res.Mesh.FaceCount(), "watertight", res.Watertight)
	}
}

func runJob(job engine.Job, log *zap.SugaredLogger) (*model.Result, error) {
	switch job.Kind {
	case engine.JobLeaf:
		height, alpha, err := heightmap.LoadImage(job.Image)
		if err != nil {
			return nil, err
		}
		return model.GenerateLeaf(height, alpha, job.Leaf, log)
	case engine.JobDiscFloret:
		return model.GenerateDiscFloret(job.Disc, log)
	case engine.JobMedallion:
		return model.GenerateMedallion(job.Medallion, log)
	}
	return nil, fmt.Errorf("unknown job kind %d", job.Kind)
}
