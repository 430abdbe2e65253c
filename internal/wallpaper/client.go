package wallpaper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.xunkong.cc/v0.1"

// APIError is returned when the service answers with a non-zero code.
type APIError struct {
	Code    int
	Message string
}

func (e APIError) Error() string {
	return fmt.Sprintf("wallpaper api: code %d: %s", e.Code, e.Message)
}

type response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func NewClient(baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  "x-wallpaper",
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func (c Client) WithUserAgent(userAgent string) Client {
	c.userAgent = userAgent
	return c
}

// Next implements Fetcher.
func (c Client) Next(ctx context.Context, afterID int) (*Info, error) {
	endpoint := c.baseURL + "/wallpaper/next/" + strconv.Itoa(afterID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("GET %s: %s: %s", endpoint, res.Status, strings.TrimSpace(string(body)))
	}

	var wrapper response
	if err := json.NewDecoder(res.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	if wrapper.Code != 0 {
		return nil, APIError{Code: wrapper.Code, Message: wrapper.Message}
	}
	if len(wrapper.Data) == 0 || string(wrapper.Data) == "null" {
		return nil, nil
	}

	var info Info
	if err := json.Unmarshal(wrapper.Data, &info); err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}

	return &info, nil
}
