// Package serialize converts declared resources to CloudFormation property maps.
package serialize

import (
	"encoding/json"
	"fmt"
)

// PropertyProvider lets a resource supply its property map directly instead
// of being marshaled field by field. Custom resources use this to flatten
// their identifying properties next to ServiceToken.
type PropertyProvider interface {
	Properties() (map[string]any, error)
}

// Properties serializes a resource value to its CloudFormation properties.
//
// Resources that implement PropertyProvider are asked for their property
// map first. Either way the result goes through a JSON round-trip, which
// gives intrinsic values (Ref, Fn::GetAtt, Fn::Sub) their wire form via
// their MarshalJSON methods and drops omitempty zero values. Provider
// maps carry raw intrinsic values too, so they need the round-trip just
// as much as struct fields do.
func Properties(v any) (map[string]any, error) {
	if p, ok := v.(PropertyProvider); ok {
		props, err := p.Properties()
		if err != nil {
			return nil, err
		}
		return roundTrip(props)
	}
	return roundTrip(v)
}

func roundTrip(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("resource did not serialize to an object: %w", err)
	}
	return props, nil
}

// Value serializes a single value to its wire form, the same JSON
// round-trip Properties applies to a whole resource. Output values carry
// intrinsics (Ref, AttrRef) that must not reach the YAML encoder as raw
// structs.
func Value(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectRefs walks a property tree and returns the logical names referenced
// via Ref or Fn::GetAtt, in first-seen order. Pseudo-parameters (AWS::*) are
// skipped; the deployment engine resolves those itself.
func CollectRefs(props map[string]any) []string {
	var names []string
	seen := make(map[string]bool)

	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case map[string]any:
			if name := refTarget(val); name != "" {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
				return
			}
			for _, inner := range val {
				walk(inner)
			}
		case []any:
			for _, inner := range val {
				walk(inner)
			}
		}
	}

	for _, v := range props {
		walk(v)
	}
	return names
}

// refTarget returns the referenced logical name if v is a Ref or Fn::GetAtt
// node, or "" otherwise.
func refTarget(v map[string]any) string {
	if len(v) != 1 {
		return ""
	}

	if ref, ok := v["Ref"]; ok {
		if name, ok := ref.(string); ok && !isPseudo(name) {
			return name
		}
		return ""
	}

	if getAtt, ok := v["Fn::GetAtt"]; ok {
		switch target := getAtt.(type) {
		case []any:
			if len(target) > 0 {
				if name, ok := target[0].(string); ok && !isPseudo(name) {
					return name
				}
			}
		case []string:
			if len(target) > 0 && !isPseudo(target[0]) {
				return target[0]
			}
		}
	}

	return ""
}

func isPseudo(name string) bool {
	return len(name) > 5 && name[:5] == "AWS::"
}
