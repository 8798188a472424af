package predictor

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Client posts performance snapshots to the external prediction service.
// Calls are fire-and-forget: they run on their own goroutine, and failures
// are logged and dropped so the service can be down without affecting
// submissions.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type predictionRequest struct {
	QuizScore float64 `json:"quiz_score"`
	TimeSpent int     `json:"time_spent"`
	LoginFreq int     `json:"login_freq"`
}

// PredictPerformance sends the snapshot in the background. Safe to call with
// an unconfigured client; it becomes a no-op.
func (c *Client) PredictPerformance(score float64, timeSpentMinutes, loginStreak int) {
	if c == nil || c.baseURL == "" {
		return
	}

	go func() {
		body, err := json.Marshal(predictionRequest{
			QuizScore: score,
			TimeSpent: timeSpentMinutes,
			LoginFreq: loginStreak,
		})
		if err != nil {
			log.Printf("[predictor] marshal request: %v", err)
			return
		}

		resp, err := c.httpClient.Post(c.baseURL+"/predict-performance", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("[predictor] prediction service unreachable: %v", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("[predictor] prediction service returned %d", resp.StatusCode)
		}
	}()
}
