// Package builder assembles the declared resource graph into a
// CloudFormation template.
//
// The builder is the boundary between declaration time and apply time: it
// validates that every reference and dependency edge points at a declared
// node, proves the graph is acyclic, and emits the template the external
// deployment engine consumes. It never resolves a deferred value itself.
package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/serialize"
)

type entry struct {
	resource  vecstack.Resource
	dependsOn []string
}

// Builder accumulates resources, parameters and outputs, then builds a template.
type Builder struct {
	description string
	names       []string
	entries     map[string]entry
	parameters  map[string]vecstack.Parameter
	outputs     map[string]vecstack.Output
}

// New creates a Builder for a template with the given description.
func New(description string) *Builder {
	return &Builder{
		description: description,
		entries:     make(map[string]entry),
		parameters:  make(map[string]vecstack.Parameter),
		outputs:     make(map[string]vecstack.Output),
	}
}

// Add declares a resource under a logical name with optional explicit
// dependency edges. Duplicate names are declaration-time errors.
func (b *Builder) Add(name string, res vecstack.Resource, dependsOn ...string) error {
	if name == "" {
		return errors.New("resource name must not be empty")
	}
	if _, exists := b.entries[name]; exists {
		return fmt.Errorf("duplicate resource name: %s", name)
	}

	b.names = append(b.names, name)
	b.entries[name] = entry{resource: res, dependsOn: dependsOn}
	return nil
}

// Has reports whether a resource was declared under the given name.
func (b *Builder) Has(name string) bool {
	_, ok := b.entries[name]
	return ok
}

// AddParameter declares a template parameter.
func (b *Builder) AddParameter(name string, p vecstack.Parameter) {
	b.parameters[name] = p
}

// AddOutput declares a template output.
func (b *Builder) AddOutput(name string, o vecstack.Output) {
	b.outputs[name] = o
}

// Names returns the declared resource names in declaration order.
func (b *Builder) Names() []string {
	return append([]string(nil), b.names...)
}

// Build serializes all declared resources, validates references and edges,
// checks the graph for cycles, and returns the template.
func (b *Builder) Build() (*vecstack.Template, error) {
	props := make(map[string]map[string]any, len(b.entries))
	deps := make(map[string][]string, len(b.entries))

	for name, e := range b.entries {
		p, err := serialize.Properties(e.resource)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		props[name] = p

		// Implicit edges come from Ref/GetAtt values; explicit DependsOn
		// edges carry the ordering constraints references cannot express
		// (e.g. bootstrap after the writer instance is reachable).
		for _, ref := range serialize.CollectRefs(p) {
			if _, isParam := b.parameters[ref]; isParam {
				continue
			}
			if !b.Has(ref) {
				return nil, fmt.Errorf("%s references undeclared resource %q", name, ref)
			}
			deps[name] = append(deps[name], ref)
		}
		for _, dep := range e.dependsOn {
			if !b.Has(dep) {
				return nil, fmt.Errorf("%s depends on undeclared resource %q", name, dep)
			}
			deps[name] = append(deps[name], dep)
		}
	}

	if err := b.checkAcyclic(deps); err != nil {
		return nil, err
	}

	template := &vecstack.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]vecstack.ResourceDef, len(b.entries)),
	}

	for name, e := range b.entries {
		dependsOn := append([]string(nil), e.dependsOn...)
		sort.Strings(dependsOn)
		template.Resources[name] = vecstack.ResourceDef{
			Type:       e.resource.ResourceType(),
			Properties: props[name],
			DependsOn:  dependsOn,
		}
	}

	if len(b.parameters) > 0 {
		template.Parameters = make(map[string]vecstack.Parameter, len(b.parameters))
		for name, p := range b.parameters {
			template.Parameters[name] = p
		}
	}
	if len(b.outputs) > 0 {
		template.Outputs = make(map[string]vecstack.Output, len(b.outputs))
		for name, o := range b.outputs {
			val, err := serialize.Value(o.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			o.Value = val
			template.Outputs[name] = o
		}
	}

	return template, nil
}

// ApplyOrder returns the resources in an order the deployment engine could
// apply them: every dependency strictly before its dependents. Build-time
// only diagnostic; the engine does its own ordering from the edges.
func (b *Builder) ApplyOrder() ([]string, error) {
	deps := make(map[string][]string, len(b.entries))
	for name, e := range b.entries {
		p, err := serialize.Properties(e.resource)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}
		for _, ref := range serialize.CollectRefs(p) {
			if b.Has(ref) {
				deps[name] = append(deps[name], ref)
			}
		}
		for _, dep := range e.dependsOn {
			if b.Has(dep) {
				deps[name] = append(deps[name], dep)
			}
		}
	}
	return b.topologicalSort(deps)
}

// topologicalSort runs Kahn's algorithm with deterministic tie-breaking.
func (b *Builder) topologicalSort(deps map[string][]string) ([]string, error) {
	successors := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.entries {
		inDegree[name] = 0
	}
	for name, ds := range deps {
		for _, dep := range ds {
			successors[dep] = append(successors[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, succ := range successors[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(b.entries) {
		return nil, b.describeCycle(deps)
	}
	return result, nil
}

// checkAcyclic fails when the dependency graph contains a cycle.
func (b *Builder) checkAcyclic(deps map[string][]string) error {
	_, err := b.topologicalSort(deps)
	return err
}

// describeCycle finds one cycle and reports it.
func (b *Builder) describeCycle(deps map[string][]string) error {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	var cycle []string
	var walk func(node string) bool
	walk = func(node string) bool {
		visited[node] = true
		onPath[node] = true

		for _, dep := range deps[node] {
			if !visited[dep] {
				if walk(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if onPath[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		onPath[node] = false
		return false
	}

	names := make([]string, 0, len(b.entries))
	for name := range b.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !visited[name] {
			if walk(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		msg := "circular dependency detected: "
		for i, name := range cycle {
			if i > 0 {
				msg += " -> "
			}
			msg += name
		}
		return errors.New(msg)
	}
	return errors.New("circular dependency detected")
}

// ToJSON serializes the template to JSON.
func ToJSON(t *vecstack.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *vecstack.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
