package services

import (
	"context"

	"github.com/procurelens/procurement_chat_app/internal/dto"
)

// ClassifierResult is the raw output of the external text classifier.
// Labels look like "LABEL_12"; only the index part is meaningful downstream.
type ClassifierResult struct {
	Label      string
	Confidence float64
}

// LabelClassifier is the outbound port to the intent model. Implementations
// wrap an inference endpoint; they never interpret the label.
type LabelClassifier interface {
	ClassifyText(ctx context.Context, text string) (ClassifierResult, error)
}

// ChatSvcFacade answers a free-text procurement question with a response
// envelope. It never returns an error: every failure mode maps to a
// success=false envelope with a human-readable message.
type ChatSvcFacade interface {
	HandleMessage(ctx context.Context, message string) dto.ChatResponse
}
