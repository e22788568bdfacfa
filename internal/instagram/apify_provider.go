package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/reignagency/reign/internal/usecase"
)

const apifyBaseURL = "https://api.apify.com/v2"

// ApifyProvider scrapes public Instagram profiles through an Apify actor.
// Runs are synchronous; the actor call returns the dataset items directly.
type ApifyProvider struct {
	token   string
	actorID string
	httpc   *http.Client
	limiter *rate.Limiter
}

func NewApifyProvider(token, actorID string) *ApifyProvider {
	return &ApifyProvider{
		token:   token,
		actorID: actorID,
		httpc:   &http.Client{Timeout: 2 * time.Minute},
		// Apify free tier throttles aggressively, keep well under it.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

type apifyRunInput struct {
	Usernames    []string `json:"username"`
	ResultsLimit int      `json:"resultsLimit"`
}

type apifyPostItem struct {
	URL           string    `json:"url"`
	DisplayURL    string    `json:"displayUrl"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	Timestamp     time.Time `json:"timestamp"`
}

func (p *ApifyProvider) FetchPosts(ctx context.Context, username string, limit int) ([]usecase.InstagramPost, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	input := apifyRunInput{
		Usernames:    []string{username},
		ResultsLimit: limit,
	}
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/acts/%s/run-sync-get-dataset-items?token=%s",
		apifyBaseURL, url.PathEscape(p.actorID), url.QueryEscape(p.token),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apify: run actor: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("apify: actor returned status %d", res.StatusCode)
	}

	var items []apifyPostItem
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("apify: decode dataset: %w", err)
	}

	posts := make([]usecase.InstagramPost, 0, len(items))
	for _, it := range items {
		posts = append(posts, usecase.InstagramPost{
			URL:        it.URL,
			DisplayURL: it.DisplayURL,
			Likes:      it.LikesCount,
			Comments:   it.CommentsCount,
			TakenAt:    it.Timestamp,
		})
	}
	return posts, nil
}
