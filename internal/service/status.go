package service

import "github.com/smartcowork/cowork-gin/internal/model"

// SubmissionStatus classifies one employee's standing on a request. It is
// derived on every call from the current request and response sets, never
// stored or cached across reloads.
type SubmissionStatus string

const (
	// StatusRequested: the employee is not a target; they see the request
	// because they issued it.
	StatusRequested SubmissionStatus = "requested"
	// StatusNotSubmitted: a target with no response yet.
	StatusNotSubmitted SubmissionStatus = "not_submitted"
	// StatusSubmitted: a target with a regular response.
	StatusSubmitted SubmissionStatus = "submitted"
	// StatusNotApplicable: a target who marked themselves exempt.
	StatusNotApplicable SubmissionStatus = "not_applicable"
)

// ComputeStatus classifies employeeID against the request and the request's
// responses. Responses for other requests are ignored, so callers may pass
// an unfiltered set.
func ComputeStatus(request *model.RequestModel, employeeID string, responses []*model.ResponseModel) SubmissionStatus {
	if !request.IsTarget(employeeID) {
		return StatusRequested
	}
	for _, res := range responses {
		if res.RequestID != request.ID || res.TargetID != employeeID {
			continue
		}
		if res.NotApplicable {
			return StatusNotApplicable
		}
		return StatusSubmitted
	}
	return StatusNotSubmitted
}
