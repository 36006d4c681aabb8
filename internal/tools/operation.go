// Package tools declares the Darwinbox operations exposed as MCP tools and
// dispatches calls to them.
package tools

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/darwinbox-mcp/internal/darwinbox"
)

// ParamType is the JSON type of a tool parameter.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeNumber ParamType = "number"
	TypeArray  ParamType = "array"
	TypeObject ParamType = "object"
)

// Param describes one tool argument. Type and Items shape the advertised
// schema; Items is the element type of arrays.
type Param struct {
	Name        string
	Type        ParamType
	Items       ParamType
	Description string
	Required    bool
}

// BuildContext carries the process settings payload builders may inject.
type BuildContext struct {
	DatasetKey string
}

// PayloadBuilder shapes caller arguments into the request body.
type PayloadBuilder func(op Operation, args map[string]any, bc BuildContext) (any, error)

// Operation maps one tool to one Darwinbox endpoint.
type Operation struct {
	Name        string
	Description string
	Method      string
	Path        string
	Params      []Param
	// Build defaults to passDeclared when nil.
	Build PayloadBuilder
}

// Param returns the named parameter declaration.
func (op Operation) Param(name string) (Param, bool) {
	for _, p := range op.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// RequiredParams lists the names of required parameters in declaration order.
func (op Operation) RequiredParams() []string {
	var names []string
	for _, p := range op.Params {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// supplied reports whether the caller provided a usable value for name:
// present, not null, and not an empty string.
func supplied(args map[string]any, name string) bool {
	v, ok := args[name]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// validate checks that every required argument was supplied. Supplied
// values are forwarded as given, whatever their JSON type.
func (op Operation) validate(args map[string]any) error {
	for _, name := range op.RequiredParams() {
		if !supplied(args, name) {
			return darwinbox.NewInvalidArgument(fmt.Sprintf("%s parameter is required", name))
		}
	}
	return nil
}

// passDeclared copies every supplied declared argument, unmodified.
// Undeclared arguments are dropped.
func passDeclared(op Operation, args map[string]any, _ BuildContext) (any, error) {
	body := make(map[string]any, len(op.Params))
	for _, p := range op.Params {
		if supplied(args, p.Name) {
			body[p.Name] = args[p.Name]
		}
	}
	return body, nil
}

// withDatasetKey is passDeclared plus the configured datasetKey.
func withDatasetKey(op Operation, args map[string]any, bc BuildContext) (any, error) {
	body, _ := passDeclared(op, args, bc)
	m := body.(map[string]any)
	m["datasetKey"] = bc.DatasetKey
	return m, nil
}

// employeeFilters is the preference order for get_employee_details filters.
var employeeFilters = []string{"employee_ids", "last_modified", "employee_no"}

// buildEmployeeDetails sends datasetKey plus at most one filter: the first
// supplied of employee_ids, last_modified, employee_no. No filter fetches
// every employee.
func buildEmployeeDetails(_ Operation, args map[string]any, bc BuildContext) (any, error) {
	body := map[string]any{"datasetKey": bc.DatasetKey}
	for _, name := range employeeFilters {
		if supplied(args, name) {
			body[name] = args[name]
			break
		}
	}
	return body, nil
}

// buildEmployeeUpdate wraps the single employee record in an employees list.
func buildEmployeeUpdate(_ Operation, args map[string]any, _ BuildContext) (any, error) {
	return map[string]any{
		"employees": []any{args["employee_data"]},
	}, nil
}
