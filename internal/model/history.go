package model

import "time"

// HistoryRecord is a persisted analysis, unique per subcomponent and session.
type HistoryRecord struct {
	ID             string          `json:"id" bson:"id"`
	SubcomponentID string          `json:"subcomponent_id" bson:"subcomponent_id"`
	SessionID      string          `json:"session_id" bson:"session_id"`
	OverallScore   float64         `json:"overall_score" bson:"overall_score"`
	Responses      SurveyResponses `json:"responses,omitempty" bson:"responses,omitempty"`
	Result         *AnalysisResult `json:"result,omitempty" bson:"result,omitempty"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" bson:"updated_at"`
}
