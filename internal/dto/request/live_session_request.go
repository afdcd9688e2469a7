package request

import "time"

// LiveParticipantRequest is one participant in a live session body.
type LiveParticipantRequest struct {
	UserID     string `json:"userId"`
	Name       string `json:"name" binding:"required,max=100"`
	CalmScore  int    `json:"calmScore" binding:"min=0,max=100"`
	Expression string `json:"expression" binding:"omitempty,oneof=happy sad angry neutral surprised fearful"`
	Status     string `json:"status" binding:"omitempty,oneof=active inactive disconnected"`
}

// AIAnalysisRequest mirrors the stored analysis block.
type AIAnalysisRequest struct {
	FaceExpression string `json:"faceExpression"`
	EmotionalState string `json:"emotionalState"`
	Posture        string `json:"posture"`
	Breathing      string `json:"breathing"`
	OverallScore   int    `json:"overallScore" binding:"min=0,max=100"`
}

// CreateLiveSessionRequest is the body of POST /api/livesessions.
type CreateLiveSessionRequest struct {
	RoomID       string                   `json:"roomId" binding:"required,max=100"`
	Host         string                   `json:"host" binding:"required"`
	Participants []LiveParticipantRequest `json:"participants" binding:"omitempty,dive"`
	StartTime    *time.Time               `json:"startTime"`
	EndTime      *time.Time               `json:"endTime"`
	AIAnalysis   *AIAnalysisRequest       `json:"aiAnalysis"`
	Status       string                   `json:"status" binding:"omitempty,oneof=active completed cancelled"`
}

// LiveSessionListQuery filters GET /api/livesessions.
type LiveSessionListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
}
