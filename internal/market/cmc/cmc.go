package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/tokensift/tokensift/internal/config"
	"github.com/tokensift/tokensift/internal/market"
)

// auxFields asks the listings endpoint for the extra attributes the
// analyzer consumes (platform, tags, listing date, rank, pair count).
const auxFields = "platform,tags,date_added,circulating_supply,total_supply,max_supply,cmc_rank,num_market_pairs"

const defaultPageSize = 1000

// Client fetches listings from the CoinMarketCap Pro API.
type Client struct {
	baseURL  string
	apiKey   string
	http     *market.RetryableHTTPClient
	pageSize int
}

func New(cfg config.Config) *Client {
	return &Client{
		baseURL:  cfg.API.BaseURL,
		apiKey:   cfg.API.Key,
		http:     market.NewRetryableHTTPClient(cfg.Timeout(), cfg.API.RequestsPerSecond),
		pageSize: defaultPageSize,
	}
}

func (c *Client) Name() string { return "cmc" }

type statusInfo struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type listingsResp struct {
	Status statusInfo       `json:"status"`
	Data   []market.Listing `json:"data"`
}

func (c *Client) key() (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("cmc api key missing; set API.Key, CMC_API_KEY or secrets.env")
	}
	return c.apiKey, nil
}

// Listings fetches up to req.Limit listings, paginating with the start
// parameter. A failure after the first full page returns what was fetched
// with a warning; a first-page failure is fatal.
func (c *Client) Listings(ctx context.Context, req market.Request) ([]market.Listing, error) {
	key, err := c.key()
	if err != nil {
		return nil, err
	}
	convert := req.Convert
	if convert == "" {
		convert = "USD"
	}
	start := req.Start
	if start <= 0 {
		start = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = c.pageSize
	}

	var all []market.Listing
	for len(all) < limit {
		page := c.pageSize
		if remaining := limit - len(all); remaining < page {
			page = remaining
		}
		params := url.Values{}
		params.Set("start", strconv.Itoa(start+len(all)))
		params.Set("limit", strconv.Itoa(page))
		params.Set("convert", convert)
		params.Set("aux", auxFields)

		var resp listingsResp
		if err := c.doJSON(ctx, key, c.baseURL+"/cryptocurrency/listings/latest?"+params.Encode(), &resp); err != nil {
			if len(all) > 0 {
				log.Warn().Err(err).Int("fetched", len(all)).Msg("Listings pagination aborted, returning partial results")
				return all, nil
			}
			return nil, err
		}
		all = append(all, resp.Data...)
		if len(resp.Data) < page {
			break // short page, no more listings
		}
	}
	log.Info().Int("listings", len(all)).Msg("Fetched listings from CoinMarketCap")
	return all, nil
}

func (c *Client) doJSON(ctx context.Context, key, rawURL string, out *listingsResp) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-CMC_PRO_API_KEY", key)
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cmc api status %d: %s", resp.StatusCode, string(errorBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode listings: %w", err)
	}
	if out.Status.ErrorCode != 0 {
		return fmt.Errorf("cmc api error %d: %s", out.Status.ErrorCode, out.Status.ErrorMessage)
	}
	return nil
}
