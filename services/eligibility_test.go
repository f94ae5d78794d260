package services

import (
	"testing"

	"github.com/campushire/placement-api/model"
	"github.com/lib/pq"
)

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		name       string
		branch     string
		cgpa       float64
		jobBranch  []string
		minCGPA    float64
		wantOK     bool
		wantReason string
	}{
		{
			name:      "no restrictions",
			branch:    "CSE",
			cgpa:      5.0,
			jobBranch: nil,
			minCGPA:   0,
			wantOK:    true,
		},
		{
			name:      "branch matches",
			branch:    "CSE",
			cgpa:      8.0,
			jobBranch: []string{"CSE", "ECE"},
			minCGPA:   7.0,
			wantOK:    true,
		},
		{
			name:       "branch does not match",
			branch:     "MECH",
			cgpa:       9.5,
			jobBranch:  []string{"CSE", "ECE"},
			minCGPA:    0,
			wantOK:     false,
			wantReason: ReasonBranch,
		},
		{
			name:       "cgpa below floor",
			branch:     "CSE",
			cgpa:       6.9,
			jobBranch:  []string{"CSE"},
			minCGPA:    7.0,
			wantOK:     false,
			wantReason: ReasonCGPA,
		},
		{
			name:      "cgpa exactly at floor is eligible",
			branch:    "CSE",
			cgpa:      7.0,
			jobBranch: nil,
			minCGPA:   7.0,
			wantOK:    true,
		},
		{
			name:      "zero min cgpa imposes no floor",
			branch:    "CSE",
			cgpa:      0,
			jobBranch: nil,
			minCGPA:   0,
			wantOK:    true,
		},
		{
			name:      "empty branch list allows every branch",
			branch:    "CIVIL",
			cgpa:      8.0,
			jobBranch: []string{},
			minCGPA:   0,
			wantOK:    true,
		},
		{
			name:       "branch failure reported before cgpa failure",
			branch:     "MECH",
			cgpa:       2.0,
			jobBranch:  []string{"CSE"},
			minCGPA:    9.0,
			wantOK:     false,
			wantReason: ReasonBranch,
		},
		{
			name:       "branch comparison is case sensitive",
			branch:     "cse",
			cgpa:       8.0,
			jobBranch:  []string{"CSE"},
			minCGPA:    0,
			wantOK:     false,
			wantReason: ReasonBranch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := &model.StudentProfile{Branch: tt.branch, CGPA: tt.cgpa}
			job := &model.Job{EligibleBranches: pq.StringArray(tt.jobBranch), MinCGPA: tt.minCGPA}

			ok, reason := CheckEligibility(student, job)
			if ok != tt.wantOK {
				t.Errorf("CheckEligibility() ok = %v, want %v", ok, tt.wantOK)
			}
			if reason != tt.wantReason {
				t.Errorf("CheckEligibility() reason = %q, want %q", reason, tt.wantReason)
			}

			if got := IsEligible(student, job); got != tt.wantOK {
				t.Errorf("IsEligible() = %v, want %v", got, tt.wantOK)
			}
		})
	}
}

func TestIneligibleErrorMessages(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{ReasonBranch, "Your branch is not eligible for this job"},
		{ReasonCGPA, "Your CGPA does not meet the minimum requirement"},
		{ReasonDeadline, "The application deadline for this job has passed"},
		{"something-else", "You are not eligible for this job"},
	}

	for _, tt := range tests {
		err := &IneligibleError{Reason: tt.reason}
		if got := err.Message(); got != tt.want {
			t.Errorf("Message() for %q = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
