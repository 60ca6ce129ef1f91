package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/config"
	"github.com/artienterprises/cartonview/pkg/ply"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to zygomys.
// It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: box-size -> box_size
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
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
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
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
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
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

func isIdentStartChar(c byte) bool {
	return isLetter(c)
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
// Keywords are identified by the __kw_ prefix added during preprocessing.
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
				// Keyword at end with no value; treat as a flag with nil.
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

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toBool accepts true/false or a keyword/string spelling of either.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	if str, err := toKeywordString(s); err == nil {
		switch strings.ToLower(str) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %s", s.SexpString(nil))
}

// toPly accepts a layer count (5) or its key ("5-ply").
func toPly(s zygo.Sexp) (ply.Ply, error) {
	if n, ok := s.(*zygo.SexpInt); ok {
		p := ply.Ply(n.Val)
		if !p.Valid() {
			return 0, fmt.Errorf("unsupported ply %d, expected 3, 5 or 7", n.Val)
		}
		return p, nil
	}
	str, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected ply number or string: %w", err)
	}
	return ply.Parse(str)
}

// toUnit accepts :mm, :in or their string forms.
func toUnit(s zygo.Sexp) (annotate.Unit, error) {
	str, err := toKeywordString(s)
	if err != nil {
		return "", fmt.Errorf("expected unit keyword (:mm, :in): %w", err)
	}
	return annotate.ParseUnit(str)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpBox wraps the Configuration produced by a box form.
type sexpBox struct {
	cfg config.Configuration
}

func (b *sexpBox) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(box %s)", b.cfg)
}
func (b *sexpBox) Type() *zygo.RegisteredType { return nil }

// scriptState collects box forms during one evaluation.
type scriptState struct {
	boxes int
	last  config.Configuration
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the carton builtins into a zygomys environment.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *scriptState) {

	// -----------------------------------------------------------------------
	// (box :length 400 :width 300 :height 200 :ply 5 :unit :in :exploded true)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("box: unexpected positional argument %s", pa.positional[0].SexpString(nil))
		}
		c := config.Default()

		for kw, v := range pa.kw {
			switch kw {
			case "length", "width", "height":
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("box: %s: %w", kw, err)
				}
				switch kw {
				case "length":
					c.Length = f
				case "width":
					c.Width = f
				default:
					c.Height = f
				}
			case "ply":
				p, err := toPly(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("box: ply: %w", err)
				}
				c.Ply = p
			case "unit":
				u, err := toUnit(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("box: unit: %w", err)
				}
				c.Unit = u
			case "exploded":
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("box: exploded: %w", err)
				}
				c.Exploded = b
			default:
				return zygo.SexpNull, fmt.Errorf("box: unknown keyword :%s", kw)
			}
		}

		st.boxes++
		st.last = c
		return &sexpBox{cfg: c}, nil
	})

	// -----------------------------------------------------------------------
	// (inches 12) and (cm 30) convert to millimeters.
	// -----------------------------------------------------------------------
	convert := func(factor float64) zygo.ZlispUserFunction {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
			}
			f, err := toFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: f * factor}, nil
		}
	}
	env.AddFunction("inches", convert(annotate.MMPerInch))
	env.AddFunction("cm", convert(10))
}
