package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/service/portfolio"
)

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) (portfolio.RefreshResult, error) {
	r.calls++
	return portfolio.RefreshResult{}, r.err
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.RefreshConfig{CronSchedule: "@hourly", Timezone: "Mars/Olympus"}, &countingRefresher{}, nil)
	if err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
		entries int
	}{
		{name: "valid", spec: "0 */6 * * *", entries: 1},
		{name: "descriptor", spec: "@daily", entries: 1},
		{name: "disabled", spec: "", entries: 0},
		{name: "invalid", spec: "every tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(config.RefreshConfig{CronSchedule: tt.spec, Timezone: "UTC"}, &countingRefresher{}, nil)
			if err != nil {
				t.Fatalf("NewScheduler returned error: %v", err)
			}
			err = s.Start()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(s.cron.Entries()); got != tt.entries {
				t.Errorf("entries = %d, want %d", got, tt.entries)
			}
			s.Stop()
		})
	}
}

func TestRefreshJobSwallowsErrors(t *testing.T) {
	r := &countingRefresher{err: errors.New("source down")}
	s, err := NewScheduler(config.RefreshConfig{CronSchedule: "@hourly", Timezone: "UTC"}, r, nil)
	if err != nil {
		t.Fatalf("NewScheduler returned error: %v", err)
	}
	s.refresh()
	if r.calls != 1 {
		t.Errorf("calls = %d, want 1", r.calls)
	}
}
