package model

import "time"

// SurveyResponses maps a question or dimension identifier to the submitted
// answer. Values are free text (string) or numeric (float64 after JSON decode).
type SurveyResponses map[string]any

// Cadence is how often a process described in a response is reviewed.
type Cadence string

const (
	CadenceNone      Cadence = "none"
	CadenceWeekly    Cadence = "weekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
)

// Ownership is the business function that owns the process.
type Ownership string

const (
	OwnerNone      Ownership = "none"
	OwnerSalesOps  Ownership = "sales ops"
	OwnerProduct   Ownership = "product"
	OwnerMarketing Ownership = "marketing"
	OwnerCS        Ownership = "cs"
	OwnerExec      Ownership = "exec"
)

// Clarity is a coarse estimate of how detailed a response is.
type Clarity string

const (
	ClarityLow  Clarity = "low"
	ClarityMed  Clarity = "med"
	ClarityHigh Clarity = "high"
)

// ExtractedFacts holds quantitative tokens pulled out of a free-text answer.
type ExtractedFacts struct {
	Percents []string `json:"percents"`
	Currency []string `json:"currency"`
	Numbers  []string `json:"numbers"`
	Dates    []string `json:"dates"`
	Snippet  string   `json:"snippet"`
}

// QualitativeSignals holds the process signals detected in a free-text answer.
type QualitativeSignals struct {
	Cadence         Cadence   `json:"cadence"`
	Ownership       Ownership `json:"ownership"`
	Standardization bool      `json:"standardization"`
	Tooling         []string  `json:"tooling"`
	CrossFunction   bool      `json:"cross_function"`
	Clarity         Clarity   `json:"clarity"`
	DocSignals      bool      `json:"doc_signals"`
}

// DimensionScore is the scored and narrated result for one dimension.
type DimensionScore struct {
	Name         string   `json:"name"`
	Score        float64  `json:"score"`
	Weight       float64  `json:"weight"`
	Band         string   `json:"band"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`

	Category string              `json:"category,omitempty"`
	Evidence string              `json:"evidence,omitempty"`
	Signals  *QualitativeSignals `json:"signals,omitempty"`
}

// AnalysisRequest is the body of an analysis call.
type AnalysisRequest struct {
	SubcomponentID string          `json:"subcomponent_id" jsonschema:"required,description=Subcomponent identifier such as 3-1"`
	SessionID      string          `json:"session_id,omitempty" jsonschema:"description=Assessment session; generated when empty"`
	Responses      SurveyResponses `json:"responses" jsonschema:"description=Question id to free-text or numeric answer"`
}

// AnalysisResult is the full output of one analysis pass.
type AnalysisResult struct {
	SubcomponentID   string           `json:"subcomponent_id"`
	SessionID        string           `json:"session_id"`
	OverallScore     float64          `json:"overall_score"`
	OverallBand      string           `json:"overall_band"`
	Dimensions       []DimensionScore `json:"dimensions"`
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	Recommendations  []string         `json:"recommendations"`
	ExecutiveSummary string           `json:"executive_summary"`
	Timestamp        time.Time        `json:"timestamp"`
}

// Dimension looks up a dimension result by name.
func (r *AnalysisResult) Dimension(name string) (DimensionScore, bool) {
	for _, d := range r.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return DimensionScore{}, false
}
