package pipeline

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// programCache compiles each expression once. Programs are compiled without
// a typed environment, so a step may see values of any type.
type programCache struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func newProgramCache() *programCache {
	return &programCache{programs: make(map[string]*vm.Program)}
}

func (c *programCache) compile(expression string) (*vm.Program, error) {
	c.mu.RLock()
	program, ok := c.programs[expression]
	c.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}

	c.mu.Lock()
	if cached, exists := c.programs[expression]; exists {
		program = cached
	} else {
		c.programs[expression] = program
	}
	c.mu.Unlock()
	return program, nil
}

func (c *programCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.programs)
}

// eval runs a compiled program against env.
func eval(program *vm.Program, expression string, env map[string]any) (any, error) {
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", expression, err)
	}
	return out, nil
}

// predicate compiles expression and returns a function that reports its
// boolean result for env. A non-bool result is an error.
func (c *programCache) predicate(expression string) (func(env map[string]any) (bool, error), error) {
	program, err := c.compile(expression)
	if err != nil {
		return nil, err
	}
	return func(env map[string]any) (bool, error) {
		out, err := eval(program, expression, env)
		if err != nil {
			return false, err
		}
		b, ok := out.(bool)
		if !ok {
			return false, fmt.Errorf("eval %q: result is %T, not bool", expression, out)
		}
		return b, nil
	}, nil
}

// transform compiles expression and returns a function that evaluates it.
func (c *programCache) transform(expression string) (func(env map[string]any) (any, error), error) {
	program, err := c.compile(expression)
	if err != nil {
		return nil, err
	}
	return func(env map[string]any) (any, error) {
		return eval(program, expression, env)
	}, nil
}

func valueEnv(v any) map[string]any {
	return map[string]any{"it": v}
}

func runeEnv(r rune) map[string]any {
	return map[string]any{"it": string(r), "code": int(r)}
}
