package stack

import (
	"fmt"
	"regexp"
	"strings"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
	. "github.com/vecstack/vecstack/intrinsics"
	"github.com/vecstack/vecstack/resources/ec2"
)

// clusterPort is the PostgreSQL port the boundary guards.
const clusterPort = 5432

const boundaryID = "VectorBoundary"

// Peer names become part of a logical ID, so they carry its charset.
var peerRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// networkBoundary is the cluster's isolation boundary: one security group
// with zero initial rules. Rules only ever grow within a deployment; each
// AllowFrom call declares one standalone ingress resource.
type networkBoundary struct {
	b     *builder.Builder
	rules map[string]string // peer name -> ingress rule logical ID
	order []string
}

func newNetworkBoundary(b *builder.Builder, cfg *Config) (*networkBoundary, error) {
	sg := ec2.SecurityGroup{
		GroupDescription: fmt.Sprintf("Network boundary for the %s cluster", cfg.Name),
		VpcId:            cfg.VpcID,
		Tags: []any{
			Tag{Key: "Name", Value: Sub{String: "${AWS::StackName}-" + cfg.Name + "-boundary"}},
		},
	}
	if err := b.Add(boundaryID, sg); err != nil {
		return nil, err
	}

	return &networkBoundary{
		b:     b,
		rules: make(map[string]string),
	}, nil
}

// AllowFrom declares an ingress rule permitting source to reach the cluster
// port. peer names the rule; calling twice with the same peer is a no-op and
// returns the existing rule, so repeated grants never produce duplicate or
// conflicting rules. source is either a security group reference or a CIDR
// string.
func (nb *networkBoundary) AllowFrom(peer string, source any) (string, error) {
	if !peerRe.MatchString(peer) {
		return "", fmt.Errorf("invalid peer name %q: want alphanumeric starting with a letter", peer)
	}
	if ruleID, ok := nb.rules[peer]; ok {
		return ruleID, nil
	}

	rule := ec2.SecurityGroupIngress{
		Description: fmt.Sprintf("Allow %s to reach the cluster", peer),
		GroupId:     vecstack.AttrRef{Resource: boundaryID, Attribute: "GroupId"},
		IpProtocol:  "tcp",
		FromPort:    clusterPort,
		ToPort:      clusterPort,
	}
	if cidr, ok := source.(string); ok && strings.Contains(cidr, "/") {
		rule.CidrIp = cidr
	} else {
		rule.SourceSecurityGroupId = source
	}

	ruleID := boundaryID + "Ingress" + peer
	if err := nb.b.Add(ruleID, rule); err != nil {
		return "", err
	}

	nb.rules[peer] = ruleID
	nb.order = append(nb.order, peer)
	return ruleID, nil
}

// RuleIDs returns the declared ingress rule logical IDs in grant order.
func (nb *networkBoundary) RuleIDs() []string {
	ids := make([]string, 0, len(nb.order))
	for _, peer := range nb.order {
		ids = append(ids, nb.rules[peer])
	}
	return ids
}
