package client

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultHIBPBaseURL = "https://api.pwnedpasswords.com"

// HIBPClient is a client for the Have I Been Pwned range API.
type HIBPClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewHIBPClient creates a new HIBPClient. An empty baseURL selects the public API.
func NewHIBPClient(baseURL string) *HIBPClient {
	if baseURL == "" {
		baseURL = DefaultHIBPBaseURL
	}
	return &HIBPClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// IsPasswordPwned checks the SHA-1 hash of password against the Pwned
// Passwords API using k-anonymity, so only the first five hex characters
// leave the process.
// See: https://haveibeenpwned.com/API/v3#PwnedPasswords
func (c *HIBPClient) IsPasswordPwned(ctx context.Context, password string) (bool, error) {
	h := sha1.New()
	if _, err := io.WriteString(h, password); err != nil {
		return false, err
	}
	sha1Hash := strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
	prefix := sha1Hash[:5]
	suffix := sha1Hash[5:]

	url := fmt.Sprintf("%s/range/%s", c.baseURL, prefix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	// HIBP rejects requests without a User-Agent
	req.Header.Set("User-Agent", "adopour-backend")
	req.Header.Set("Add-Padding", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HIBP API returned status: %s", resp.Status)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), ":")
		if len(parts) != 2 || parts[0] != suffix {
			continue
		}
		// Padded responses carry fake suffixes with a zero count
		return strings.TrimSpace(parts[1]) != "0", nil
	}

	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}
