package stack

import (
	"fmt"
	"strings"

	vecstack "github.com/vecstack/vecstack"
	"github.com/vecstack/vecstack/internal/builder"
	. "github.com/vecstack/vecstack/intrinsics"
	"github.com/vecstack/vecstack/resources/iam"
	"github.com/vecstack/vecstack/resources/scheduler"
)

const (
	schedulerRoleID = "SchedulerRole"
	resumeID        = "ResumeSchedule"
	suspendID       = "SuspendSchedule"
)

// newScheduleUnit declares the start/stop automation: one role scoped to
// exactly the two lifecycle actions on this one cluster, and a pair of
// schedules invoking them. Callers only reach this when a schedule policy
// is present; an absent policy produces none of these resources.
func newScheduleUnit(b *builder.Builder, cfg *Config, cluster ClusterHandle) error {
	resumeExpr, err := schedulerExpression(cfg.Schedule.Resume)
	if err != nil {
		return fmt.Errorf("resume schedule: %w", err)
	}
	suspendExpr, err := schedulerExpression(cfg.Schedule.Suspend)
	if err != nil {
		return fmt.Errorf("suspend schedule: %w", err)
	}

	clusterArn := Sub{String: "arn:${AWS::Partition}:rds:${AWS::Region}:${AWS::AccountId}:cluster:${" + cluster.LogicalID + "}"}

	role := iam.Role{
		Description: "Lets the scheduler start and stop the " + cfg.Name + " cluster",
		AssumeRolePolicyDocument: PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{
				PolicyStatement{
					Effect:    "Allow",
					Principal: ServicePrincipal{"scheduler.amazonaws.com"},
					Action:    "sts:AssumeRole",
				},
			},
		},
		Policies: []any{
			iam.Role_Policy{
				PolicyName: "cluster-lifecycle",
				PolicyDocument: PolicyDocument{
					Version: "2012-10-17",
					Statement: []any{
						PolicyStatement{
							Effect:   "Allow",
							Action:   []any{"rds:StartDBCluster", "rds:StopDBCluster"},
							Resource: clusterArn,
						},
					},
				},
			},
		},
	}
	// The Sub above names the cluster inside a string, invisible to the
	// reference walker. The edge is declared explicitly.
	if err := b.Add(schedulerRoleID, role, cluster.LogicalID); err != nil {
		return err
	}

	if err := b.Add(resumeID, lifecycleSchedule(cfg, cluster,
		"startDBCluster", "Resumes the cluster", resumeExpr,
	), cluster.LogicalID); err != nil {
		return err
	}
	return b.Add(suspendID, lifecycleSchedule(cfg, cluster,
		"stopDBCluster", "Suspends the cluster", suspendExpr,
	), cluster.LogicalID)
}

func lifecycleSchedule(cfg *Config, cluster ClusterHandle, action, description, expression string) scheduler.Schedule {
	return scheduler.Schedule{
		Description:                description,
		ScheduleExpression:         expression,
		ScheduleExpressionTimezone: cfg.Schedule.Timezone,
		State:                      "ENABLED",
		FlexibleTimeWindow: scheduler.Schedule_FlexibleTimeWindow{
			Mode: "OFF",
		},
		Target: scheduler.Schedule_Target{
			Arn:     Sub{String: "arn:${AWS::Partition}:scheduler:::aws-sdk:rds:" + action},
			RoleArn: vecstack.AttrRef{Resource: schedulerRoleID, Attribute: "Arn"},
			Input:   Sub{String: `{"DbInstanceIdentifier": "${` + cluster.LogicalID + `}"}`},
			RetryPolicy: &scheduler.Schedule_RetryPolicy{
				MaximumRetryAttempts: 3,
			},
		},
	}
}

// schedulerExpression converts a five-field cron expression into the
// scheduler's six-field form "cron(m h dom mon dow *)". The scheduler
// requires a "?" in exactly one of the day fields, so "*" placeholders
// are rewritten: when both day fields are wildcards the day-of-week
// becomes "?", when only one is constrained the other becomes "?", and
// constraining both at once is rejected.
func schedulerExpression(expr string) (string, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return "", fmt.Errorf("want a five-field cron expression, got %q", expr)
	}
	if strings.HasPrefix(fields[0], "@") {
		return "", fmt.Errorf("descriptor expressions like %q are not supported", expr)
	}

	dom, dow := fields[2], fields[4]
	switch {
	case dom == "*" && dow == "*":
		dow = "?"
	case dom == "*":
		dom = "?"
	case dow == "*":
		dow = "?"
	default:
		return "", fmt.Errorf("cron expression %q constrains both day-of-month and day-of-week", expr)
	}

	return fmt.Sprintf("cron(%s %s %s %s %s *)", fields[0], fields[1], dom, fields[3], dow), nil
}
