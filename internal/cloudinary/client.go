// Package cloudinary uploads question attachments and profile pictures to
// Cloudinary using their REST API.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Client talks to the Cloudinary upload API.
type Client struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
	HTTP      *http.Client
}

// New creates a Cloudinary client.
func New(cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		BaseURL:   defaultBaseURL,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// uploadResult holds the response from Cloudinary after a successful upload.
type uploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
}

// Upload sends raw file bytes to Cloudinary under the given folder and
// returns the stored asset's secure URL and public ID. The "auto" resource
// type lets Cloudinary accept images, PDFs, and text files alike.
func (c *Client) Upload(ctx context.Context, data []byte, filename, folder string) (string, string, error) {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   c.APIKey,
	}
	if folder != "" {
		params["folder"] = folder
	}
	params["signature"] = c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range params {
		_ = w.WriteField(k, v)
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", "", fmt.Errorf("cloudinary: create form file failed: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		return "", "", fmt.Errorf("cloudinary: write file failed: %w", err)
	}
	w.Close()

	url := fmt.Sprintf("%s/%s/auto/upload", c.BaseURL, c.CloudName)
	body, err := c.post(ctx, url, &buf, w.FormDataContentType())
	if err != nil {
		return "", "", err
	}

	var result uploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", fmt.Errorf("cloudinary: decode response failed: %w", err)
	}
	return result.SecureURL, result.PublicID, nil
}

// Destroy removes a previously uploaded asset by its public ID.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	params := map[string]string{
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
		"api_key":   c.APIKey,
		"public_id": publicID,
	}
	params["signature"] = c.sign(params)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	w.Close()

	url := fmt.Sprintf("%s/%s/image/destroy", c.BaseURL, c.CloudName)
	body, err := c.post(ctx, url, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}

	var result struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("cloudinary: decode response failed: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary: destroy failed: %s", result.Result)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: create request failed: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cloudinary: request failed (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// sign computes the Cloudinary API signature from the given params.
// api_key and file are excluded from the signature per Cloudinary's rules.
func (c *Client) sign(params map[string]string) string {
	excludeKeys := map[string]bool{"api_key": true, "file": true, "resource_type": true}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if !excludeKeys[k] && v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)

	payload := strings.Join(pairs, "&") + c.APISecret
	h := sha1.New()
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
