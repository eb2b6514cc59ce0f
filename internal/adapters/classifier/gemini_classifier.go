package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	portssvc "github.com/procurelens/procurement_chat_app/internal/core/ports/services"
)

// geminiClassifier prompts a Gemini model to pick one label out of the known
// set. It exists as a drop-in alternative for deployments without a hosted
// classification endpoint.
type geminiClassifier struct {
	client *genai.Client
	model  string
	prompt string
}

// NewGeminiClassifier creates a classifier backed by the Gemini API. The
// labelMapping ("0" -> intent name) fixes the label vocabulary the model may
// answer with.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, labelMapping map[string]string) (portssvc.LabelClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiClassifier{
		client: client,
		model:  model,
		prompt: buildClassifierPrompt(labelMapping),
	}, nil
}

func buildClassifierPrompt(labelMapping map[string]string) string {
	indexes := make([]string, 0, len(labelMapping))
	for idx := range labelMapping {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool {
		if len(indexes[i]) != len(indexes[j]) {
			return len(indexes[i]) < len(indexes[j])
		}
		return indexes[i] < indexes[j]
	})

	var sb strings.Builder
	sb.WriteString("You are an intent classifier for a procurement data assistant.\n\n")
	sb.WriteString("Task:\n")
	sb.WriteString("- Classify the user's question into exactly one of the labels below.\n\n")
	sb.WriteString("Labels:\n")
	for _, idx := range indexes {
		fmt.Fprintf(&sb, "- LABEL_%s: %s\n", idx, labelMapping[idx])
	}
	sb.WriteString("\nRules:\n")
	sb.WriteString("- Answer with STRICT JSON only: {\"label\": \"LABEL_N\", \"score\": <confidence between 0 and 1>}.\n")
	sb.WriteString("- Do NOT wrap the response in code fences.\n")
	sb.WriteString("- Do NOT use ```json or any Markdown.\n")
	return sb.String()
}

func (c *geminiClassifier) ClassifyText(ctx context.Context, text string) (portssvc.ClassifierResult, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: c.prompt},
				{Text: "Question: " + text},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return portssvc.ClassifierResult{}, fmt.Errorf("failed to generate content: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())
	// Models occasionally fence the output despite instructions.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed scoredLabel
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return portssvc.ClassifierResult{}, fmt.Errorf("failed to parse model output: %w", err)
	}
	if parsed.Label == "" {
		return portssvc.ClassifierResult{}, fmt.Errorf("model returned no label")
	}

	return portssvc.ClassifierResult{Label: parsed.Label, Confidence: parsed.Score}, nil
}
