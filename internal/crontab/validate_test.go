package crontab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{name: "daily at ten", expression: "0 10 * * *", wantErr: false},
		{name: "every minute", expression: "* * * * *", wantErr: false},
		{name: "weekly", expression: "15 3 * * 1", wantErr: false},
		{name: "descriptor", expression: "@daily", wantErr: false},
		{name: "too few fields", expression: "0 10 * *", wantErr: true},
		{name: "not a cron expression", expression: "every day at ten", wantErr: true},
		{name: "empty", expression: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
