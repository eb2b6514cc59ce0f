package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	portssvc "github.com/procurelens/procurement_chat_app/internal/core/ports/services"
)

// httpClassifier calls a hosted text-classification inference endpoint.
// The endpoint accepts {"inputs": "..."} and answers with scored labels,
// either flat ([{"label","score"}]) or nested per input ([[{...}]]).
type httpClassifier struct {
	url    string
	client *http.Client
}

// NewHTTPClassifier creates a classifier backed by an inference endpoint.
func NewHTTPClassifier(url string, timeout time.Duration) portssvc.LabelClassifier {
	return &httpClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *httpClassifier) ClassifyText(ctx context.Context, text string) (portssvc.ClassifierResult, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return portssvc.ClassifierResult{}, fmt.Errorf("failed to marshal classifier request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return portssvc.ClassifierResult{}, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return portssvc.ClassifierResult{}, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return portssvc.ClassifierResult{}, fmt.Errorf("failed to read classifier response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return portssvc.ClassifierResult{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	labels, err := decodeScoredLabels(respBody)
	if err != nil {
		return portssvc.ClassifierResult{}, err
	}
	if len(labels) == 0 {
		return portssvc.ClassifierResult{}, fmt.Errorf("classifier returned no labels")
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}

	return portssvc.ClassifierResult{Label: best.Label, Confidence: best.Score}, nil
}

func decodeScoredLabels(body []byte) ([]scoredLabel, error) {
	var flat []scoredLabel
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 && flat[0].Label != "" {
		return flat, nil
	}

	var nested [][]scoredLabel
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}

	return nil, fmt.Errorf("unexpected classifier response shape")
}
