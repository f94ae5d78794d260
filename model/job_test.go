package model

import (
	"testing"
	"time"
)

func TestAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		status   JobStatus
		deadline *time.Time
		want     bool
	}{
		{"active without deadline", JobStatusActive, nil, true},
		{"active before deadline", JobStatusActive, &future, true},
		{"active past deadline", JobStatusActive, &past, false},
		{"closed without deadline", JobStatusClosed, nil, false},
		{"closed before deadline", JobStatusClosed, &future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{Status: tt.status, Deadline: tt.deadline}
			if got := job.AcceptsApplications(now); got != tt.want {
				t.Errorf("AcceptsApplications() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAcceptsApplicationsAtExactDeadline(t *testing.T) {
	deadline := time.Date(2026, 8, 1, 23, 59, 59, 0, time.UTC)
	job := &Job{Status: JobStatusActive, Deadline: &deadline}

	// The deadline instant itself is still acceptable
	if !job.AcceptsApplications(deadline) {
		t.Error("application at the exact deadline should be accepted")
	}
	if job.AcceptsApplications(deadline.Add(time.Second)) {
		t.Error("application one second past the deadline should be refused")
	}
}
