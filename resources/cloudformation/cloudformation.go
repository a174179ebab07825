// Package cloudformation declares custom resources, the deployment engine's
// hook for one-shot, content-addressed actions.
package cloudformation

// CustomResource invokes a service token once per change to its properties.
// The engine re-invokes the token if and only if a property value changes,
// which makes the property set the action's identifying key.
type CustomResource struct {
	// Type overrides the emitted resource type, e.g. "Custom::VectorStoreInit".
	// Empty means the generic "AWS::CloudFormation::CustomResource".
	Type string `json:"-"`

	// ServiceToken is the ARN of the function the engine invokes.
	ServiceToken any `json:"ServiceToken"`

	// Extra holds the identifying properties, flattened alongside ServiceToken.
	Extra map[string]any `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (c CustomResource) ResourceType() string {
	if c.Type != "" {
		return c.Type
	}
	return "AWS::CloudFormation::CustomResource"
}

// Properties flattens ServiceToken and the identifying properties into a
// single property map. Extra never overrides ServiceToken.
func (c CustomResource) Properties() (map[string]any, error) {
	props := make(map[string]any, len(c.Extra)+1)
	for k, v := range c.Extra {
		props[k] = v
	}
	props["ServiceToken"] = c.ServiceToken
	return props, nil
}
