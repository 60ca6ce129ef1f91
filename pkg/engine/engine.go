// Package engine evaluates carton scripts. It wraps zygomys in a sandboxed
// environment and produces a validated config.Configuration from source
// such as:
//
//	(box :length 400 :width 300 :height 200 :ply 5 :unit :in :exploded true)
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/artienterprises/cartonview/pkg/config"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code or a configuration
// that failed validation.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
}

// EvalResult bundles the full output of an evaluation for use by UI bindings.
type EvalResult struct {
	Config   *config.Configuration
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	settings   config.Settings
}

// NewEngine creates an Engine that validates against the default settings.
func NewEngine() *Engine {
	return NewEngineWithSettings(config.DefaultSettings())
}

// NewEngineWithSettings creates an Engine that validates against s.
func NewEngineWithSettings(s config.Settings) *Engine {
	return &Engine{settings: s}
}

// Evaluate takes Lisp source code and produces a new Configuration.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns config + nil errors + nil error
//   - On parse/eval/validation failure: returns nil config + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*config.Configuration, []EvalError, error) {
	res, err := e.EvaluateFull(source)
	if err != nil {
		return nil, nil, err
	}
	return res.Config, res.Errors, nil
}

// EvaluateFull is Evaluate with warnings.
func (e *Engine) EvaluateFull(source string) (EvalResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res := e.evaluate(source)
		ch <- evalResult{res: res}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) EvalResult {
	// Empty source is a valid program that produces the default carton.
	if strings.TrimSpace(source) == "" {
		c := config.Default()
		return EvalResult{Config: &c}
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &scriptState{}
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}
	}
	if _, err := env.Run(); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}
	}

	var res EvalResult
	c := config.Default()
	switch {
	case st.boxes == 0:
		res.Warnings = append(res.Warnings, EvalWarning{Message: "no (box ...) form; using the default carton"})
	case st.boxes > 1:
		res.Warnings = append(res.Warnings, EvalWarning{
			Message: fmt.Sprintf("%d box forms evaluated; the last one wins", st.boxes),
		})
		c = st.last
	default:
		c = st.last
	}

	for _, ve := range config.Validate(c, e.settings) {
		if ve.Severity == config.SeverityError {
			res.Errors = append(res.Errors, EvalError{Message: ve.Error()})
		} else {
			res.Warnings = append(res.Warnings, EvalWarning{Message: ve.Error()})
		}
	}
	if len(res.Errors) > 0 {
		return res
	}
	res.Config = &c
	return res
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
