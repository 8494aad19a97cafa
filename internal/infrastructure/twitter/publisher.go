package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"NewsPoster/internal/config"
	"NewsPoster/internal/ports"
)

const (
	defaultUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	defaultTweetURL  = "https://api.twitter.com/2/tweets"

	maxImageBytes = 5 << 20
)

// Publisher posts to X via the v1.1 media endpoint and the v2 tweet
// endpoint. Requests are signed with OAuth1 user credentials; image
// bytes are downloaded with a plain unauthenticated client first.
type Publisher struct {
	uploadURL string
	tweetURL  string
	api       *http.Client
	media     *http.Client
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher builds an OAuth1-signed client from configuration.
func NewPublisher(cfg config.TwitterConfig) *Publisher {
	oauthCfg := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)

	api := oauthCfg.Client(oauth1.NoContext, token)
	api.Timeout = 15 * time.Second

	return &Publisher{
		uploadURL: defaultUploadURL,
		tweetURL:  defaultTweetURL,
		api:       api,
		media:     &http.Client{Timeout: 10 * time.Second},
	}
}

// UploadMedia downloads the image and pushes it to the media endpoint,
// returning the platform media id for attachment.
func (p *Publisher) UploadMedia(ctx context.Context, imageURL string) (string, error) {
	image, err := p.downloadImage(ctx, imageURL)
	if err != nil {
		return "", err
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("media", "image.jpg")
	if err != nil {
		return "", fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("write form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadURL, &form)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.api.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("media endpoint %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode media response: %w", err)
	}
	if decoded.MediaIDString == "" {
		return "", fmt.Errorf("media endpoint returned no id")
	}

	return decoded.MediaIDString, nil
}

// PublishPost creates the tweet, optionally attaching uploaded media,
// and returns the platform-assigned post id.
func (p *Publisher) PublishPost(ctx context.Context, text, mediaID string) (string, error) {
	payload := map[string]any{"text": text}
	if mediaID != "" {
		payload["media"] = map[string]any{"media_ids": []string{mediaID}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal tweet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tweetURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.api.Do(req)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("tweet endpoint %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode tweet response: %w", err)
	}
	if decoded.Data.ID == "" {
		return "", fmt.Errorf("tweet endpoint returned no id")
	}

	return decoded.Data.ID, nil
}

func (p *Publisher) downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := p.media.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned %s", resp.Status)
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("image fetch returned empty body")
	}

	return image, nil
}
