package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerExpression(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		want    string
		wantErr string
	}{
		{
			name: "weekday mornings",
			expr: "0 8 * * MON-FRI",
			want: "cron(0 8 ? * MON-FRI *)",
		},
		{
			name: "every evening",
			expr: "0 20 * * *",
			want: "cron(0 20 * * ? *)",
		},
		{
			name: "first of the month",
			expr: "30 6 1 * *",
			want: "cron(30 6 1 * ? *)",
		},
		{
			name: "step minutes",
			expr: "*/15 9-17 * * 1-5",
			want: "cron(*/15 9-17 ? * 1-5 *)",
		},
		{
			name:    "both day fields constrained",
			expr:    "0 8 1 * MON",
			wantErr: "constrains both",
		},
		{
			name:    "too few fields",
			expr:    "0 8 * *",
			wantErr: "five-field",
		},
		{
			name:    "descriptor",
			expr:    "@daily",
			wantErr: "five-field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schedulerExpression(tt.expr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
