package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClassifier_FlatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what is the cheapest item", req["inputs"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"LABEL_7","score":0.91},{"label":"LABEL_2","score":0.04}]`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 5*time.Second)
	result, err := c.ClassifyText(context.Background(), "what is the cheapest item")

	require.NoError(t, err)
	assert.Equal(t, "LABEL_7", result.Label)
	assert.InDelta(t, 0.91, result.Confidence, 1e-9)
}

func TestHTTPClassifier_NestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[{"label":"LABEL_1","score":0.2},{"label":"LABEL_3","score":0.7}]]`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 5*time.Second)
	result, err := c.ClassifyText(context.Background(), "total quantity please")

	require.NoError(t, err)
	assert.Equal(t, "LABEL_3", result.Label)
}

func TestHTTPClassifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 5*time.Second)
	_, err := c.ClassifyText(context.Background(), "hello")

	assert.Error(t, err)
}

func TestHTTPClassifier_UnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"unexpected"}`))
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 5*time.Second)
	_, err := c.ClassifyText(context.Background(), "hello")

	assert.Error(t, err)
}

func TestDecodeScoredLabels(t *testing.T) {
	labels, err := decodeScoredLabels([]byte(`[{"label":"LABEL_0","score":1}]`))
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "LABEL_0", labels[0].Label)

	labels, err = decodeScoredLabels([]byte(`[[{"label":"LABEL_4","score":0.5}]]`))
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "LABEL_4", labels[0].Label)

	_, err = decodeScoredLabels([]byte(`"nope"`))
	assert.Error(t, err)
}
