package services

import (
	"github.com/campushire/placement-api/model"
)

// CheckEligibility decides whether a student may apply to a job. It is a
// pure function over the two records: no side effects, same answer for
// the same inputs. Each job-side constraint is vacuously satisfied when
// absent — no branch restriction means every branch qualifies, and a
// zero MinCGPA imposes no floor. The CGPA bound is inclusive.
//
// When the student is not eligible the returned reason names the first
// failed check (ReasonBranch or ReasonCGPA).
func CheckEligibility(student *model.StudentProfile, job *model.Job) (bool, string) {
	if len(job.EligibleBranches) > 0 && !containsBranch(job.EligibleBranches, student.Branch) {
		return false, ReasonBranch
	}
	if job.MinCGPA > 0 && student.CGPA < job.MinCGPA {
		return false, ReasonCGPA
	}
	return true, ""
}

// IsEligible is CheckEligibility without the reason.
func IsEligible(student *model.StudentProfile, job *model.Job) bool {
	ok, _ := CheckEligibility(student, job)
	return ok
}

func containsBranch(branches []string, branch string) bool {
	for _, b := range branches {
		if b == branch {
			return true
		}
	}
	return false
}
