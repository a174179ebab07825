// Package stack composes the managed resources behind a vector-capable
// relational database cluster and synthesizes them into a deployable
// template.
package stack

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	// Aurora Serverless v2 capacity unit bounds.
	minCapacityFloor = 0.5
	maxCapacityCeil  = 128

	maxBootstrapTimeout = 900
)

// ScalingConfig bounds the cluster's capacity units.
type ScalingConfig struct {
	MinCapacity float64 `yaml:"minCapacity"`
	MaxCapacity float64 `yaml:"maxCapacity"`
}

// ScheduleConfig is the optional start/stop automation policy. Absence (nil
// or both expressions empty) means no automation is declared at all.
type ScheduleConfig struct {
	// Resume and Suspend are five-field cron expressions, e.g. "0 8 * * MON-FRI".
	Resume  string `yaml:"resume"`
	Suspend string `yaml:"suspend"`

	// Timezone for both expressions. Defaults to UTC.
	Timezone string `yaml:"timezone"`
}

func (s *ScheduleConfig) empty() bool {
	return s == nil || (s.Resume == "" && s.Suspend == "")
}

// BootstrapConfig locates the initialization function's deployment package.
// The function body (enabling the vector extension) lives outside this
// module; only its invocation contract is declared here.
type BootstrapConfig struct {
	S3Bucket string `yaml:"s3Bucket"`
	S3Key    string `yaml:"s3Key"`
	Handler  string `yaml:"handler"`
	Runtime  string `yaml:"runtime"`
	Timeout  int    `yaml:"timeout"`
}

// Config is the inbound configuration for a vector store stack.
type Config struct {
	// Name prefixes resource identifiers. Lowercase letters, digits, hyphens.
	Name string `yaml:"name"`

	// VpcID and SubnetIDs are the network context the cluster lives in.
	VpcID     string   `yaml:"vpcId"`
	SubnetIDs []string `yaml:"subnetIds"`

	DatabaseName   string `yaml:"databaseName"`
	MasterUsername string `yaml:"masterUsername"`
	EngineVersion  string `yaml:"engineVersion"`

	// Encryption toggles storage encryption on the cluster.
	Encryption bool `yaml:"encryption"`

	// Reader adds a replica instance. Off by default; the writer alone
	// serves the vector store.
	Reader bool `yaml:"reader"`

	DeletionProtection  bool `yaml:"deletionProtection"`
	BackupRetentionDays int  `yaml:"backupRetentionDays"`

	Scaling   ScalingConfig   `yaml:"scaling"`
	Schedule  *ScheduleConfig `yaml:"schedule"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// Load reads a stack config file. Unknown keys are rejected so typos fail
// at declaration time instead of silently disabling a unit.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "vectorstore"
	}
	if c.DatabaseName == "" {
		c.DatabaseName = "vectors"
	}
	if c.MasterUsername == "" {
		c.MasterUsername = "postgres"
	}
	if c.EngineVersion == "" {
		c.EngineVersion = "15.5"
	}
	if c.Scaling.MinCapacity == 0 {
		c.Scaling.MinCapacity = minCapacityFloor
	}
	if c.Scaling.MaxCapacity == 0 {
		c.Scaling.MaxCapacity = 4
	}
	if c.BackupRetentionDays == 0 {
		c.BackupRetentionDays = 7
	}
	if c.Schedule != nil && c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "UTC"
	}
	if c.Bootstrap.Handler == "" {
		c.Bootstrap.Handler = "index.handler"
	}
	if c.Bootstrap.Runtime == "" {
		c.Bootstrap.Runtime = "python3.12"
	}
	if c.Bootstrap.Timeout == 0 {
		c.Bootstrap.Timeout = 300
	}
}

// HasCron reports whether a schedule policy is present. An absent or empty
// policy is a valid state meaning "no automation", not an error.
func (c *Config) HasCron() bool {
	return !c.Schedule.empty()
}

var (
	nameRe     = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	dbNameRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	userNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// Validate checks the configuration before any resource graph is emitted.
// Every error here is a declaration-time failure.
func (c *Config) Validate() error {
	if !nameRe.MatchString(c.Name) {
		return fmt.Errorf("invalid stack name %q: want lowercase letters, digits, hyphens", c.Name)
	}
	if c.VpcID == "" {
		return fmt.Errorf("vpcId is required")
	}
	if len(c.SubnetIDs) < 2 {
		return fmt.Errorf("at least two subnetIds are required, got %d", len(c.SubnetIDs))
	}
	if !dbNameRe.MatchString(c.DatabaseName) {
		return fmt.Errorf("invalid databaseName %q", c.DatabaseName)
	}
	if !userNameRe.MatchString(c.MasterUsername) {
		return fmt.Errorf("invalid masterUsername %q", c.MasterUsername)
	}

	if err := c.Scaling.validate(); err != nil {
		return err
	}
	if err := c.Schedule.validate(); err != nil {
		return err
	}
	return c.Bootstrap.validate()
}

func (s ScalingConfig) validate() error {
	if s.MinCapacity < minCapacityFloor {
		return fmt.Errorf("scaling.minCapacity %g is below the minimum of %g", s.MinCapacity, float64(minCapacityFloor))
	}
	if s.MaxCapacity > maxCapacityCeil {
		return fmt.Errorf("scaling.maxCapacity %g exceeds the maximum of %d", s.MaxCapacity, maxCapacityCeil)
	}
	if s.MinCapacity > s.MaxCapacity {
		return fmt.Errorf("scaling.minCapacity %g exceeds scaling.maxCapacity %g", s.MinCapacity, s.MaxCapacity)
	}
	return nil
}

func (s *ScheduleConfig) validate() error {
	if s.empty() {
		return nil
	}
	if s.Resume == "" || s.Suspend == "" {
		return fmt.Errorf("schedule requires both resume and suspend expressions")
	}
	if _, err := cron.ParseStandard(s.Resume); err != nil {
		return fmt.Errorf("invalid resume cron expression %q: %w", s.Resume, err)
	}
	if _, err := cron.ParseStandard(s.Suspend); err != nil {
		return fmt.Errorf("invalid suspend cron expression %q: %w", s.Suspend, err)
	}
	return nil
}

func (b BootstrapConfig) validate() error {
	if b.S3Bucket == "" || b.S3Key == "" {
		return fmt.Errorf("bootstrap requires s3Bucket and s3Key")
	}
	if b.Timeout < 1 || b.Timeout > maxBootstrapTimeout {
		return fmt.Errorf("bootstrap.timeout %d is outside 1..%d seconds", b.Timeout, maxBootstrapTimeout)
	}
	return nil
}
