package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/model"
	"github.com/tunepipe/tunepipe/util"
)

// Client talks to the remote generation service. Every failure mode
// (transport, timeout, bad status, unrecognized body) collapses to
// RemoteGenerationError; the wrapped cause is the only way to tell
// them apart.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(serviceURL string) *Client {
	return &Client{
		url:        serviceURL,
		httpClient: &http.Client{Timeout: constants.GenerateTimeout},
	}
}

func (c *Client) Generate(ctx context.Context, seed string) (string, error) {
	form := url.Values{
		"seed":   {seed},
		"length": {strconv.Itoa(constants.GenerationLength)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &model.RemoteGenerationError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &model.RemoteGenerationError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &model.RemoteGenerationError{Cause: fmt.Errorf("service returned status %v", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &model.RemoteGenerationError{Cause: err}
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &model.RemoteGenerationError{Cause: fmt.Errorf("response is not a JSON object: %w", err)}
	}

	text, ok := ExtractGenerated(payload)
	if !ok {
		return "", &model.RemoteGenerationError{
			Cause: fmt.Errorf("no recognized shape in response, keys: %v", util.GetKeys(payload)),
		}
	}
	return text, nil
}
