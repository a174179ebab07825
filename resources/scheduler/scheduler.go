// Package scheduler declares the EventBridge Scheduler resources vecstack emits.
package scheduler

// Schedule_FlexibleTimeWindow is required by the scheduler; vecstack always
// pins it to OFF so resume/suspend fire at the exact cron instant.
type Schedule_FlexibleTimeWindow struct {
	Mode string `json:"Mode"`
}

// Schedule_RetryPolicy bounds the scheduler's own redelivery of a failed
// target invocation.
type Schedule_RetryPolicy struct {
	MaximumRetryAttempts int `json:"MaximumRetryAttempts"`
}

// Schedule_Target is the action a schedule invokes.
type Schedule_Target struct {
	Arn         any                   `json:"Arn"`
	RoleArn     any                   `json:"RoleArn"`
	Input       any                   `json:"Input,omitempty"`
	RetryPolicy *Schedule_RetryPolicy `json:"RetryPolicy,omitempty"`
}

// Schedule is an AWS::Scheduler::Schedule.
type Schedule struct {
	Name                       any                         `json:"Name,omitempty"`
	Description                string                      `json:"Description,omitempty"`
	ScheduleExpression         string                      `json:"ScheduleExpression"`
	ScheduleExpressionTimezone string                      `json:"ScheduleExpressionTimezone,omitempty"`
	State                      string                      `json:"State,omitempty"`
	FlexibleTimeWindow         Schedule_FlexibleTimeWindow `json:"FlexibleTimeWindow"`
	Target                     Schedule_Target             `json:"Target"`
}

// ResourceType returns the CloudFormation type.
func (Schedule) ResourceType() string { return "AWS::Scheduler::Schedule" }
