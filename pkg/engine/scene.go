package engine

import (
	"fmt"

	"github.com/stigsb/rumi-leaf/pkg/model"
)

// JobKind identifies which generation pipeline a job runs.
type JobKind int

const (
	JobLeaf JobKind = iota
	JobDiscFloret
	JobMedallion
)

func (k JobKind) String() string {
	switch k {
	case JobLeaf:
		return "leaf"
	case JobDiscFloret:
		return "disc-floret"
	case JobMedallion:
		return "medallion"
	}
	return fmt.Sprintf("JobKind(%d)", int(k))
}

// Job is one model to generate: a pipeline, its parameters, and where
// the STL goes. Only the parameter set matching Kind is meaningful.
type Job struct {
	Kind   JobKind
	Output string
	// Image is the source PNG path, leaf jobs only.
	Image string

	Leaf      model.LeafParams
	Disc      model.DiscParams
	Medallion model.MedallionParams
}

// Scene is the ordered list of jobs a script produced. Jobs render in
// declaration order.
type Scene struct {
	Jobs []Job
}

// Add appends a job and returns its index.
func (s *Scene) Add(j Job) int {
	s.Jobs = append(s.Jobs, j)
	return len(s.Jobs) - 1
}
