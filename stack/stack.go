package stack

import (
	"fmt"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
)

// BoundaryHandle is a read-only handle to the network boundary. Consumers
// widen access through Stack.AllowFrom; the handle itself only observes.
type BoundaryHandle struct {
	LogicalID string
	boundary  *networkBoundary
}

// GroupId returns the boundary security group ID as a deferred reference.
func (h BoundaryHandle) GroupId() vecstack.AttrRef {
	return vecstack.AttrRef{Resource: h.LogicalID, Attribute: "GroupId"}
}

// RuleIDs returns the ingress rule logical IDs declared so far, in grant order.
func (h BoundaryHandle) RuleIDs() []string {
	return h.boundary.RuleIDs()
}

// Stack composes the vector store's units (network boundary, cluster,
// optional schedule policy, bootstrap trigger) into one resource graph.
type Stack struct {
	cfg      *Config
	b        *builder.Builder
	boundary *networkBoundary
	cluster  ClusterHandle
	secret   SecretHandle
}

// New validates the configuration and declares every unit it calls for.
// All declaration-time failures (bad cron, capacity out of bounds, missing
// network context) surface here, before anything is synthesized.
func New(cfg *Config) (*Stack, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := builder.New(fmt.Sprintf("Vector store %s: serverless PostgreSQL cluster with managed credentials and one-shot schema bootstrap", cfg.Name))

	boundary, err := newNetworkBoundary(b, cfg)
	if err != nil {
		return nil, err
	}

	cluster, secret, err := newClusterUnit(b, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.HasCron() {
		if err := newScheduleUnit(b, cfg, cluster); err != nil {
			return nil, err
		}
	}

	if err := newBootstrapUnit(b, cfg, boundary, cluster, secret); err != nil {
		return nil, err
	}

	b.AddOutput("ClusterEndpoint", vecstack.Output{
		Description: "Writer endpoint host",
		Value:       cluster.EndpointHost(),
	})
	b.AddOutput("ClusterIdentifier", vecstack.Output{
		Description: "Cluster identifier",
		Value:       cluster.Identifier(),
	})
	b.AddOutput("SecretArn", vecstack.Output{
		Description: "ARN of the credential secret",
		Value:       secret.Arn(),
	})
	b.AddOutput("BoundaryId", vecstack.Output{
		Description: "Security group guarding the cluster",
		Value:       vecstack.AttrRef{Resource: boundaryID, Attribute: "GroupId"},
	})

	return &Stack{
		cfg:      cfg,
		b:        b,
		boundary: boundary,
		cluster:  cluster,
		secret:   secret,
	}, nil
}

// AllowFrom grants a named peer network access to the cluster port. Granting
// the same peer twice is a no-op. source is a CIDR string or a security
// group reference.
func (s *Stack) AllowFrom(peer string, source any) error {
	_, err := s.boundary.AllowFrom(peer, source)
	return err
}

// Boundary returns the network boundary handle.
func (s *Stack) Boundary() BoundaryHandle {
	return BoundaryHandle{LogicalID: boundaryID, boundary: s.boundary}
}

// Cluster returns the cluster handle.
func (s *Stack) Cluster() ClusterHandle {
	return s.cluster
}

// Secret returns the credential secret handle.
func (s *Stack) Secret() SecretHandle {
	return s.secret
}

// Config returns the validated configuration the stack was built from.
func (s *Stack) Config() *Config {
	return s.cfg
}

// Synthesize builds the declared graph into a template, validating every
// reference and dependency edge and proving the graph acyclic.
func (s *Stack) Synthesize() (*vecstack.Template, error) {
	return s.b.Build()
}

// ApplyOrder returns a valid apply order for the declared resources.
// Diagnostic only; the deployment engine orders from the emitted edges.
func (s *Stack) ApplyOrder() ([]string, error) {
	return s.b.ApplyOrder()
}
