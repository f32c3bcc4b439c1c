// Package script embeds a sandboxed zygomys interpreter so scenes can be
// described in Lisp:
//
//	(add (box 1 1 1) :name "base" :color "red")
//	(add (point 0 0 2) :color "#00ff00")
//
// Each evaluation runs in a fresh sandboxed environment and produces a
// scene bound to the engine's rendering context.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	compas "github.com/jf---/compas"
	"github.com/jf---/compas/scene"
)

// EvalError is a non-fatal error produced by evaluating user source, such
// as a parse error or a failing builtin.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates scene scripts. Each call to Evaluate creates a fresh
// sandboxed environment, so an Engine is safe for concurrent use.
type Engine struct {
	context string
}

// NewEngine creates an engine whose scenes are bound to the given
// rendering context. An empty context is resolved by the scene layer.
func NewEngine(context string) *Engine {
	return &Engine{context: context}
}

// Evaluate runs source and returns the scene it builds.
//
// Return semantics:
//   - success: scene, nil, nil
//   - parse or runtime error in user code: nil, eval errors, nil
//   - internal failure (panic in a builtin): nil, nil, error
func (e *Engine) Evaluate(source string) (s *scene.Scene, evalErrs []EvalError, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, evalErrs = nil, nil
			err = fmt.Errorf("script: panic during evaluation: %v", r)
		}
	}()

	s = scene.NewScene("Script", e.context)
	if strings.TrimSpace(source) == "" {
		return s, nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, s)

	if loadErr := env.LoadString(preprocess(source)); loadErr != nil {
		return nil, parseZygoError(loadErr), nil
	}
	if _, runErr := env.Run(); runErr != nil {
		return nil, parseZygoError(runErr), nil
	}

	compas.Logger().Debug("script: evaluated", "objects", len(s.Objects()))
	return s, nil, nil
}

// linePattern matches zygomys "[Error ]on line N: ..." messages.
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// parseZygoError extracts a line number from a zygomys error when one is
// present.
func parseZygoError(err error) []EvalError {
	msg := strings.TrimSpace(err.Error())
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: msg}}
}
