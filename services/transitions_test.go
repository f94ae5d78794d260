package services

import (
	"testing"

	"github.com/campushire/placement-api/model"
)

var allStatuses = []model.ApplicationStatus{
	model.StatusApplied,
	model.StatusShortlisted,
	model.StatusInterview,
	model.StatusSelected,
	model.StatusRejected,
}

func TestCanTransition(t *testing.T) {
	allowed := map[model.ApplicationStatus][]model.ApplicationStatus{
		model.StatusApplied:     {model.StatusShortlisted, model.StatusRejected},
		model.StatusShortlisted: {model.StatusInterview, model.StatusRejected},
		model.StatusInterview:   {model.StatusSelected, model.StatusRejected},
	}

	isAllowed := func(from, to model.ApplicationStatus) bool {
		for _, next := range allowed[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	// Exhaustive check over every (from, to) pair
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := isAllowed(from, to)
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesAbsorb(t *testing.T) {
	for _, terminal := range []model.ApplicationStatus{model.StatusSelected, model.StatusRejected} {
		if !terminal.IsTerminal() {
			t.Errorf("%q should be terminal", terminal)
		}
		for _, to := range allStatuses {
			if CanTransition(terminal, to) {
				t.Errorf("CanTransition(%q, %q) = true, terminal states must absorb", terminal, to)
			}
		}
	}

	for _, s := range []model.ApplicationStatus{model.StatusApplied, model.StatusShortlisted, model.StatusInterview} {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestRejectedReachableFromEveryNonTerminal(t *testing.T) {
	for _, from := range []model.ApplicationStatus{model.StatusApplied, model.StatusShortlisted, model.StatusInterview} {
		if !CanTransition(from, model.StatusRejected) {
			t.Errorf("CanTransition(%q, rejected) = false, want true", from)
		}
	}
}

func TestNoSelfTransitions(t *testing.T) {
	for _, s := range allStatuses {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%q, %q) = true, self transitions are not allowed", s, s)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range allStatuses {
		if !s.IsValid() {
			t.Errorf("IsValid(%q) = false, want true", s)
		}
	}
	for _, s := range []model.ApplicationStatus{"", "pending", "APPLIED", "hired"} {
		if s.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestCanManageApplication(t *testing.T) {
	const ownerUserID uint = 42

	tests := []struct {
		name  string
		actor *model.User
		want  bool
	}{
		{"nil actor", nil, false},
		{"admin manages any application", &model.User{ID: 1, Role: model.RoleAdmin}, true},
		{"owning company user", &model.User{ID: ownerUserID, Role: model.RoleCompany}, true},
		{"other company user", &model.User{ID: 7, Role: model.RoleCompany}, false},
		{"student cannot manage", &model.User{ID: ownerUserID, Role: model.RoleStudent}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageApplication(tt.actor, ownerUserID); got != tt.want {
				t.Errorf("CanManageApplication() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{From: model.StatusSelected, To: model.StatusApplied}
	want := `invalid status transition from "selected" to "applied"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
