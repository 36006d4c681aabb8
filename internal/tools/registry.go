package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/darwinbox-mcp/internal/darwinbox"
)

// Executor sends one authenticated request to Darwinbox.
// *darwinbox.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, method, path string, payload any) (json.RawMessage, error)
}

// Registry dispatches tool calls to their operations.
type Registry struct {
	executor Executor
	build    BuildContext
	ops      []Operation
	byName   map[string]int
}

// NewRegistry creates a registry over the full catalog.
func NewRegistry(executor Executor, datasetKey string) *Registry {
	ops := Catalog()
	byName := make(map[string]int, len(ops))
	for i, op := range ops {
		byName[op.Name] = i
	}
	return &Registry{
		executor: executor,
		build:    BuildContext{DatasetKey: datasetKey},
		ops:      ops,
		byName:   byName,
	}
}

// Operations returns the operations in catalog order.
func (r *Registry) Operations() []Operation {
	out := make([]Operation, len(r.ops))
	copy(out, r.ops)
	return out
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Operation{}, false
	}
	return r.ops[i], true
}

// Call validates args, builds the payload and executes the named operation.
// Unknown names and invalid arguments fail before any request is sent.
// Panics are recovered as internal errors.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (result json.RawMessage, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = darwinbox.NewInternal(fmt.Sprintf("panic in %s: %v", name, rec))
		}
	}()

	op, ok := r.Lookup(name)
	if !ok {
		return nil, darwinbox.NewUnknownOperation(name)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := op.validate(args); err != nil {
		return nil, err
	}

	build := op.Build
	if build == nil {
		build = passDeclared
	}
	payload, err := build(op, args, r.build)
	if err != nil {
		return nil, err
	}

	return r.executor.Execute(ctx, op.Method, op.Path, payload)
}
