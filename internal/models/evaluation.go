package models

type EvaluateRequest struct {
	ExtractedText string   `json:"extractedText"`
	DocKind       DocKind  `json:"docKind"`
	Language      Language `json:"language"`
	TargetRole    *string  `json:"targetRole,omitempty"`
}

type ActionableEdit struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// RubricScores are integers in [0,100].
type RubricScores struct {
	Readability int `json:"readability"`
	Impact      int `json:"impact"`
	Structure   int `json:"structure"`
	Specificity int `json:"specificity"`
	RoleFit     int `json:"roleFit"`
}

type EvaluationReport struct {
	OverallScore    int              `json:"overallScore"`
	RubricScores    RubricScores     `json:"rubricScores"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	ActionableEdits []ActionableEdit `json:"actionableEdits"`
	RedFlags        []string         `json:"redFlags"`
	Summary         string           `json:"summary"`
}

type EvaluateResponse struct {
	Report          EvaluationReport `json:"report"`
	ImprovedVersion string           `json:"improvedVersion"`
}
