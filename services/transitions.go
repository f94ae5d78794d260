package services

import (
	"github.com/campushire/placement-api/model"
)

// validTransitions is the application state machine. Forward progress is
// applied -> shortlisted -> interview -> selected; rejected is reachable
// from any non-terminal state. selected and rejected are terminal.
var validTransitions = map[model.ApplicationStatus][]model.ApplicationStatus{
	model.StatusApplied:     {model.StatusShortlisted, model.StatusRejected},
	model.StatusShortlisted: {model.StatusInterview, model.StatusRejected},
	model.StatusInterview:   {model.StatusSelected, model.StatusRejected},
}

// CanTransition reports whether moving an application from one status to
// another is permitted.
func CanTransition(from, to model.ApplicationStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanManageApplication is the capability check for the ownership chain
// application -> job -> company -> user. Admins may transition any
// application; a company user only those on jobs their company owns.
func CanManageApplication(actor *model.User, jobOwnerUserID uint) bool {
	if actor == nil {
		return false
	}
	if actor.Role == model.RoleAdmin {
		return true
	}
	return actor.Role == model.RoleCompany && actor.ID == jobOwnerUserID
}
