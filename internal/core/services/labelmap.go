package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/procurelens/procurement_chat_app/internal/apperrors"
	portssvc "github.com/procurelens/procurement_chat_app/internal/core/ports/services"
	"github.com/procurelens/procurement_chat_app/internal/utils"
)

// LoadLabelMapping reads the classifier label index to intent name table.
// The file is the model's label_mapping.json: {"0": "total_orders", ...}.
func LoadLabelMapping(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label mapping %s: %w", path, err)
	}

	mapping := map[string]string{}
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse label mapping %s: %w", path, err)
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("label mapping %s is empty", path)
	}

	return mapping, nil
}

// IntentResolver turns free text into a canonical intent name via the
// external classifier and the static label mapping. Loaded once at startup
// and immutable afterwards.
type IntentResolver struct {
	classifier portssvc.LabelClassifier
	mapping    map[string]string
}

// NewIntentResolver creates a resolver over a classifier and a label mapping.
func NewIntentResolver(classifier portssvc.LabelClassifier, mapping map[string]string) *IntentResolver {
	return &IntentResolver{classifier: classifier, mapping: mapping}
}

// Resolve classifies the text and maps the label to an intent name. Any
// classifier failure or unknown label yields ErrUnrecognizedIntent; the
// caller never sees a raw classifier error.
func (r *IntentResolver) Resolve(ctx context.Context, text string) (string, error) {
	result, err := r.classifier.ClassifyText(ctx, text)
	if err != nil {
		utils.GetLoggerFromCtx(ctx).Warn("Intent classification failed", slog.String("error", err.Error()))
		return "", apperrors.ErrUnrecognizedIntent
	}

	index := strings.TrimPrefix(result.Label, "LABEL_")
	intent, ok := r.mapping[index]
	if !ok {
		utils.GetLoggerFromCtx(ctx).Warn("Unrecognized intent label", slog.String("label", result.Label))
		return "", apperrors.ErrUnrecognizedIntent
	}

	return intent, nil
}
