package services

import (
	"testing"
	"time"

	"github.com/campushire/placement-api/model"
)

func TestJobAcceptsApplicationsEnforced(t *testing.T) {
	svc := NewPlacementService(nil, nil, true)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		job  model.Job
		want bool
	}{
		{"active no deadline", model.Job{Status: model.JobStatusActive}, true},
		{"active future deadline", model.Job{Status: model.JobStatusActive, Deadline: &future}, true},
		{"active past deadline", model.Job{Status: model.JobStatusActive, Deadline: &past}, false},
		{"closed future deadline", model.Job{Status: model.JobStatusClosed, Deadline: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.JobAcceptsApplications(&tt.job, now); got != tt.want {
				t.Errorf("JobAcceptsApplications() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJobAcceptsApplicationsUnenforced(t *testing.T) {
	svc := NewPlacementService(nil, nil, false)
	now := time.Now()
	past := now.Add(-time.Hour)

	job := model.Job{Status: model.JobStatusActive, Deadline: &past}
	if !svc.JobAcceptsApplications(&job, now) {
		t.Error("past deadline should not block applications when enforcement is off")
	}

	closed := model.Job{Status: model.JobStatusClosed}
	if svc.JobAcceptsApplications(&closed, now) {
		t.Error("closed job should never accept applications")
	}
}
