package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/stigsb/rumi-leaf/pkg/model"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: disc-floret -> disc_floret
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters, so a
		// minus operator stays untouched.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// floatArg overwrites *dst when the keyword is present.
func floatArg(pa kwArgs, builtin, key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	*dst = f
	return nil
}

// intArg overwrites *dst when the keyword is present.
func intArg(pa kwArgs, builtin, key string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	*dst = n
	return nil
}

// stringArg requires the keyword to be present and a string.
func stringArg(pa kwArgs, builtin, key string, dst *string) error {
	v, ok := pa.kw[key]
	if !ok {
		return fmt.Errorf("%s: missing required :%s", builtin, key)
	}
	s, err := toString(v)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", builtin, key, err)
	}
	*dst = s
	return nil
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpJobRef wraps a scene job index so scripts can see what they built.
type sexpJobRef struct {
	index  int
	kind   JobKind
	output string
}

func (j *sexpJobRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(job %d %s %q)", j.index, j.kind, j.output)
}
func (j *sexpJobRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins append jobs to the provided scene.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string
// literals.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {

	// -----------------------------------------------------------------------
	// (leaf :image "maple.png" :output "maple.stl"
	//       :scale-xy 100 :scale-z 3.5 :base 1 :stride 3 :alpha-threshold 0.3)
	// -----------------------------------------------------------------------
	env.AddFunction("leaf", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		job := Job{Kind: JobLeaf, Leaf: model.DefaultLeafParams()}

		if err := stringArg(pa, "leaf", "image", &job.Image); err != nil {
			return zygo.SexpNull, err
		}
		if err := stringArg(pa, "leaf", "output", &job.Output); err != nil {
			return zygo.SexpNull, err
		}
		for key, dst := range map[string]*float64{
			"scale-xy":        &job.Leaf.ScaleXY,
			"scale-z":         &job.Leaf.ScaleZ,
			"base":            &job.Leaf.BaseThickness,
			"alpha-threshold": &job.Leaf.AlphaThreshold,
		} {
			if err := floatArg(pa, "leaf", key, dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		if err := intArg(pa, "leaf", "stride", &job.Leaf.Stride); err != nil {
			return zygo.SexpNull, err
		}
		if err := model.FirstError(model.ValidateLeaf(job.Leaf)); err != nil {
			return zygo.SexpNull, fmt.Errorf("leaf: %w", err)
		}

		idx := scene.Add(job)
		return &sexpJobRef{index: idx, kind: JobLeaf, output: job.Output}, nil
	})

	// -----------------------------------------------------------------------
	// (disc-floret :output "floret.stl" :diameter 20 :base-height 1
	//              :density 1.0 :convexity 0.5 :resolution 96 :seed 7)
	// -----------------------------------------------------------------------
	env.AddFunction("disc_floret", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		job := Job{Kind: JobDiscFloret, Disc: model.DefaultDiscParams()}

		if err := stringArg(pa, "disc-floret", "output", &job.Output); err != nil {
			return zygo.SexpNull, err
		}
		for key, dst := range map[string]*float64{
			"diameter":    &job.Disc.Diameter,
			"base-height": &job.Disc.BaseHeight,
			"density":     &job.Disc.Density,
			"convexity":   &job.Disc.Convexity,
		} {
			if err := floatArg(pa, "disc-floret", key, dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		if err := intArg(pa, "disc-floret", "resolution", &job.Disc.Resolution); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["seed"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("disc-floret: seed: %w", err)
			}
			job.Disc.Seed = int64(n)
		}
		if err := model.FirstError(model.ValidateDisc(job.Disc)); err != nil {
			return zygo.SexpNull, fmt.Errorf("disc-floret: %w", err)
		}

		idx := scene.Add(job)
		return &sexpJobRef{index: idx, kind: JobDiscFloret, output: job.Output}, nil
	})

	// -----------------------------------------------------------------------
	// (medallion :output "medallion.stl" :diameter 30 :convexity 0.6
	//            :resolution 128 :ridge-radii (list 0.8 0.92) :ornaments 8)
	// -----------------------------------------------------------------------
	env.AddFunction("medallion", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		job := Job{Kind: JobMedallion, Medallion: model.DefaultMedallionParams()}

		if err := stringArg(pa, "medallion", "output", &job.Output); err != nil {
			return zygo.SexpNull, err
		}
		for key, dst := range map[string]*float64{
			"diameter":  &job.Medallion.Diameter,
			"convexity": &job.Medallion.Convexity,
		} {
			if err := floatArg(pa, "medallion", key, dst); err != nil {
				return zygo.SexpNull, err
			}
		}
		if err := intArg(pa, "medallion", "resolution", &job.Medallion.Resolution); err != nil {
			return zygo.SexpNull, err
		}
		if err := intArg(pa, "medallion", "ornaments", &job.Medallion.OrnamentCount); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["ridge-radii"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("medallion: ridge-radii: %w", err)
			}
			radii := make([]float64, 0, len(items))
			for _, item := range items {
				f, err := toFloat64(item)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("medallion: ridge-radii entry: %w", err)
				}
				radii = append(radii, f)
			}
			job.Medallion.RidgeRadii = radii
		}
		if err := model.FirstError(model.ValidateMedallion(job.Medallion)); err != nil {
			return zygo.SexpNull, fmt.Errorf("medallion: %w", err)
		}

		idx := scene.Add(job)
		return &sexpJobRef{index: idx, kind: JobMedallion, output: job.Output}, nil
	})
}
