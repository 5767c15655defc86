package models

// MaxStepIDLength matches the width of completed_steps.step_id
const MaxStepIDLength = 255

// ToggleStepRequest represents a request to flip one step's completion
type ToggleStepRequest struct {
	StepID string `json:"stepId"`
}

// ProgressResponse carries a user's full completion set
type ProgressResponse struct {
	CompletedSteps []string `json:"completedSteps"`
}
