// Package asenax wraps the Asenax BIST listing API, which serves the
// symbol directory for Borsa Istanbul equities.
package asenax

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	HttpClient *http.Client
	BaseURL    string
}

func NewClient(baseURL string) Client {
	return Client{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

// DefaultSymbols is the fallback directory used when the listing API
// is unreachable or returns an unusable payload.
var DefaultSymbols = []string{
	"THYAO", "AKBNK", "GARAN", "ISCTR", "KOZAA", "SASA", "ASELS", "TCELL", "PETKM", "TUPRS",
	"KCHOL", "ARCLK", "BIMAS", "EREGL", "FROTO", "HALKB", "KRDMD", "SAHOL", "SISE", "TKFEN",
	"TOASO", "VAKBN", "YKBNK", "AKSA", "ALARK", "ANACM", "ASUZU", "BERA", "BRISA", "DOHOL",
}

type listResponse struct {
	Code string `json:"code"`
	Data []struct {
		Kod string `json:"kod"`
	} `json:"data"`
}

// List fetches the symbol directory. A code other than "0" or an empty
// payload is an error; callers fall back to DefaultSymbols.
func (c Client) List() ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to construct symbol list request: %w", err)
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get symbol list: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("symbol list request returned status %d", response.StatusCode)
	}

	responseBody := listResponse{}
	if err := json.NewDecoder(response.Body).Decode(&responseBody); err != nil {
		return nil, fmt.Errorf("failed to parse symbol list response: %w", err)
	}
	if responseBody.Code != "0" {
		return nil, fmt.Errorf("symbol list request returned code %q", responseBody.Code)
	}

	symbols := []string{}
	for _, item := range responseBody.Data {
		if item.Kod != "" {
			symbols = append(symbols, item.Kod)
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol list response contained no symbols")
	}

	return symbols, nil
}
