package cmc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/tokensift/tokensift/internal/config"
	"github.com/tokensift/tokensift/internal/market"
)

func testClient(baseURL string) *Client {
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.Key = "test-key"
	cfg.API.RequestsPerSecond = 1000
	return New(cfg)
}

func listingsPage(start, count int) []market.Listing {
	page := make([]market.Listing, count)
	for i := range page {
		page[i] = market.Listing{
			ID:     start + i,
			Symbol: fmt.Sprintf("TOK%d", start+i),
			Quote:  map[string]market.Quote{"USD": {Price: 1.5}},
		}
	}
	return page
}

func TestListingsAuthAndParams(t *testing.T) {
	var gotKey, gotAux, gotConvert string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-CMC_PRO_API_KEY")
		gotAux = r.URL.Query().Get("aux")
		gotConvert = r.URL.Query().Get("convert")
		json.NewEncoder(w).Encode(listingsResp{Data: listingsPage(1, 2)})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Listings(context.Background(), market.Request{Limit: 2})
	if err != nil {
		t.Fatalf("Listings: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("listings = %d, want 2", len(got))
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotConvert != "USD" {
		t.Errorf("convert = %q, want USD", gotConvert)
	}
	if gotAux != auxFields {
		t.Errorf("aux = %q", gotAux)
	}
}

func TestListingsPagination(t *testing.T) {
	var starts []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		starts = append(starts, start)
		count := limit
		if start > 4 {
			count = 1 // short page ends the walk
		}
		json.NewEncoder(w).Encode(listingsResp{Data: listingsPage(start, count)})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.pageSize = 2
	got, err := c.Listings(context.Background(), market.Request{Limit: 10})
	if err != nil {
		t.Fatalf("Listings: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("listings = %d, want 5 (two full pages and a short one)", len(got))
	}
	wantStarts := []int{1, 3, 5}
	if len(starts) != len(wantStarts) {
		t.Fatalf("requests = %v, want %v", starts, wantStarts)
	}
	for i := range wantStarts {
		if starts[i] != wantStarts[i] {
			t.Errorf("request %d start = %d, want %d", i, starts[i], wantStarts[i])
		}
	}
}

func TestListingsPartialOnMidPaginationFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		json.NewEncoder(w).Encode(listingsResp{Data: listingsPage(1, 2)})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.pageSize = 2
	got, err := c.Listings(context.Background(), market.Request{Limit: 10})
	if err != nil {
		t.Fatalf("mid-pagination failure must return partial results, got error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("listings = %d, want the 2 from the first page", len(got))
	}
}

func TestListingsFirstPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	if _, err := c.Listings(context.Background(), market.Request{Limit: 10}); err == nil {
		t.Fatal("expected error on first-page failure")
	}
}

func TestListingsStatusEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listingsResp{Status: statusInfo{ErrorCode: 1002, ErrorMessage: "API key missing"}})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Listings(context.Background(), market.Request{Limit: 10})
	if err == nil {
		t.Fatal("expected error from status envelope")
	}
}

func TestListingsMissingKey(t *testing.T) {
	cfg := config.Default()
	cfg.API.Key = ""
	c := New(cfg)
	if _, err := c.Listings(context.Background(), market.Request{Limit: 10}); err == nil {
		t.Fatal("expected error when the api key is missing")
	}
}
