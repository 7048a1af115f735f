package engine

import (
	"math"
	"strings"
	"testing"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keyword becomes prefixed string",
			in:   `(leaf :image "a.png")`,
			want: `(leaf "__kw_image" "a.png")`,
		},
		{
			name: "kebab identifier becomes underscore",
			in:   `(disc-floret)`,
			want: `(disc_floret)`,
		},
		{
			name: "kebab keyword keeps hyphen in name",
			in:   `(:ridge-radii)`,
			want: `("__kw_ridge-radii")`,
		},
		{
			name: "minus operator untouched",
			in:   `(- 5 3)`,
			want: `(- 5 3)`,
		},
		{
			name: "minus between numbers untouched",
			in:   `(+ 10 -3)`,
			want: `(+ 10 -3)`,
		},
		{
			name: "strings untouched",
			in:   `(leaf :output "disc-floret.stl")`,
			want: `(leaf "__kw_output" "disc-floret.stl")`,
		},
		{
			name: "semicolon comment becomes slashes",
			in:   ";; a comment\n(+ 1 2)",
			want: "// a comment\n(+ 1 2)",
		},
		{
			name: "assignment operator preserved",
			in:   `(x := 5)`,
			want: `(x := 5)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.in)
			if got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDiscFloretBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `(disc-floret :output "floret.stl"
                     :diameter 24
                     :base-height 1.2
                     :density 1.5
                     :convexity 0.4
                     :resolution 64
                     :seed 42)`
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(s.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(s.Jobs))
	}

	job := s.Jobs[0]
	if job.Kind != JobDiscFloret {
		t.Errorf("kind = %v, want disc-floret", job.Kind)
	}
	if job.Output != "floret.stl" {
		t.Errorf("output = %q, want floret.stl", job.Output)
	}
	if job.Disc.Diameter != 24 {
		t.Errorf("diameter = %v, want 24", job.Disc.Diameter)
	}
	if job.Disc.BaseHeight != 1.2 {
		t.Errorf("baseHeight = %v, want 1.2", job.Disc.BaseHeight)
	}
	if job.Disc.Density != 1.5 {
		t.Errorf("density = %v, want 1.5", job.Disc.Density)
	}
	if job.Disc.Convexity != 0.4 {
		t.Errorf("convexity = %v, want 0.4", job.Disc.Convexity)
	}
	if job.Disc.Resolution != 64 {
		t.Errorf("resolution = %d, want 64", job.Disc.Resolution)
	}
	if job.Disc.Seed != 42 {
		t.Errorf("seed = %d, want 42", job.Disc.Seed)
	}
}

func TestDiscFloretDefaults(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, err := eng.Evaluate(`(disc-floret :output "d.stl")`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(s.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(s.Jobs))
	}

	// Unset keywords keep the pipeline defaults.
	job := s.Jobs[0]
	if job.Disc.Diameter != 20 {
		t.Errorf("default diameter = %v, want 20", job.Disc.Diameter)
	}
	if job.Disc.Resolution != 96 {
		t.Errorf("default resolution = %d, want 96", job.Disc.Resolution)
	}
}

func TestDiscFloretMissingOutput(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, err := eng.Evaluate(`(disc-floret :diameter 20)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil scene when a builtin fails")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for missing :output")
	}
	if !strings.Contains(evalErrs[0].Message, "output") {
		t.Errorf("error should mention output, got %q", evalErrs[0].Message)
	}
}

func TestDiscFloretInvalidParams(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, _ := eng.Evaluate(`(disc-floret :output "x.stl" :diameter -5)`)
	if s != nil {
		t.Fatal("expected nil scene for invalid diameter")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for negative diameter")
	}
}

func TestLeafBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `(leaf :image "maple.png" :output "maple.stl"
              :scale-xy 120 :scale-z 4 :base 0.8 :stride 2 :alpha-threshold 0.25)`
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(s.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(s.Jobs))
	}

	job := s.Jobs[0]
	if job.Kind != JobLeaf {
		t.Errorf("kind = %v, want leaf", job.Kind)
	}
	if job.Image != "maple.png" {
		t.Errorf("image = %q, want maple.png", job.Image)
	}
	if job.Leaf.ScaleXY != 120 {
		t.Errorf("scaleXY = %v, want 120", job.Leaf.ScaleXY)
	}
	if job.Leaf.ScaleZ != 4 {
		t.Errorf("scaleZ = %v, want 4", job.Leaf.ScaleZ)
	}
	if job.Leaf.BaseThickness != 0.8 {
		t.Errorf("base = %v, want 0.8", job.Leaf.BaseThickness)
	}
	if job.Leaf.Stride != 2 {
		t.Errorf("stride = %d, want 2", job.Leaf.Stride)
	}
	if job.Leaf.AlphaThreshold != 0.25 {
		t.Errorf("alphaThreshold = %v, want 0.25", job.Leaf.AlphaThreshold)
	}
}

func TestLeafMissingImage(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, _ := eng.Evaluate(`(leaf :output "x.stl")`)
	if s != nil {
		t.Fatal("expected nil scene when image is missing")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for missing :image")
	}
}

func TestMedallionBuiltin(t *testing.T) {
	eng := NewEngine()

	source := `(medallion :output "med.stl" :diameter 40 :convexity 0.7
                  :resolution 96 :ridge-radii (list 0.75 0.9) :ornaments 6)`
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(s.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(s.Jobs))
	}

	job := s.Jobs[0]
	if job.Kind != JobMedallion {
		t.Errorf("kind = %v, want medallion", job.Kind)
	}
	if job.Medallion.Diameter != 40 {
		t.Errorf("diameter = %v, want 40", job.Medallion.Diameter)
	}
	if job.Medallion.Convexity != 0.7 {
		t.Errorf("convexity = %v, want 0.7", job.Medallion.Convexity)
	}
	if job.Medallion.OrnamentCount != 6 {
		t.Errorf("ornaments = %d, want 6", job.Medallion.OrnamentCount)
	}
	want := []float64{0.75, 0.9}
	if len(job.Medallion.RidgeRadii) != len(want) {
		t.Fatalf("ridge radii = %v, want %v", job.Medallion.RidgeRadii, want)
	}
	for i, r := range want {
		if math.Abs(job.Medallion.RidgeRadii[i]-r) > 1e-12 {
			t.Errorf("ridge radius %d = %v, want %v", i, job.Medallion.RidgeRadii[i], r)
		}
	}
}

func TestMedallionInvalidRidgeRadius(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, _ := eng.Evaluate(`(medallion :output "x.stl" :ridge-radii (list 1.5))`)
	if s != nil {
		t.Fatal("expected nil scene for out-of-range ridge radius")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for ridge radius outside (0, 1)")
	}
}

func TestMultipleJobsInOrder(t *testing.T) {
	eng := NewEngine()

	source := `
; a small garden of prints
(disc-floret :output "a.stl")
(medallion :output "b.stl")
(disc-floret :output "c.stl" :diameter 12)
`
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(s.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(s.Jobs))
	}

	wantOutputs := []string{"a.stl", "b.stl", "c.stl"}
	for i, w := range wantOutputs {
		if s.Jobs[i].Output != w {
			t.Errorf("job %d output = %q, want %q", i, s.Jobs[i].Output, w)
		}
	}
	if s.Jobs[1].Kind != JobMedallion {
		t.Errorf("job 1 kind = %v, want medallion", s.Jobs[1].Kind)
	}
}

func TestJobsComposeWithLisp(t *testing.T) {
	eng := NewEngine()

	// DSL calls mix with plain Lisp control flow.
	source := `
(def d 18)
(disc-floret :output "small.stl" :diameter d)
(disc-floret :output "large.stl" :diameter (* d 2))
`
	s, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(s.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(s.Jobs))
	}
	if s.Jobs[0].Disc.Diameter != 18 {
		t.Errorf("small diameter = %v, want 18", s.Jobs[0].Disc.Diameter)
	}
	if s.Jobs[1].Disc.Diameter != 36 {
		t.Errorf("large diameter = %v, want 36", s.Jobs[1].Disc.Diameter)
	}
}

func TestParseArgs(t *testing.T) {
	// parseArgs operates on preprocessed keyword strings.
	src := `(disc-floret :output "o.stl" :diameter 20)`
	got := preprocessSource(src)
	if !strings.Contains(got, kwPrefix+"output") {
		t.Fatalf("preprocess should emit keyword strings, got %q", got)
	}
}
