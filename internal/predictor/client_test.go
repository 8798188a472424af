package predictor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPredictPerformance_PostsSnapshot(t *testing.T) {
	received := make(chan predictionRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict-performance" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req predictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		received <- req
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.PredictPerformance(87.5, 60, 4)

	select {
	case req := <-received:
		if req.QuizScore != 87.5 || req.TimeSpent != 60 || req.LoginFreq != 4 {
			t.Errorf("unexpected payload %+v", req)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("prediction request never arrived")
	}
}

func TestPredictPerformance_UnconfiguredIsNoop(t *testing.T) {
	client := NewClient("")
	// Must not panic or block.
	client.PredictPerformance(50, 30, 1)

	var nilClient *Client
	nilClient.PredictPerformance(50, 30, 1)
}
