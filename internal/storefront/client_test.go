package storefront

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchAndFetchPrice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "portal 2" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><body>
			<div class="game-item"><a class="name" href="/game/portal-2">Portal 2</a></div>
			<div class="game-item"><a class="name" href="/game/portal-bundle">Portal Bundle</a></div>
		</body></html>`)
	})
	mux.HandleFunc("/game/portal-2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<span class="lowPrice">4,99€</span>
			<a class="shop-style"><span>Steam</span></a>
		</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	results, err := client.Search(context.Background(), "portal 2")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].URL != server.URL+"/game/portal-2" {
		t.Fatalf("url = %q", results[0].URL)
	}

	price, err := client.FetchPrice(context.Background(), results[0].URL)
	if err != nil {
		t.Fatalf("FetchPrice: %v", err)
	}
	if price.Amount != 4.99 || price.Currency != "EUR" || price.Shop != "Steam" {
		t.Fatalf("price = %+v", price)
	}
	if price.URL != results[0].URL {
		t.Fatalf("price url = %q", price.URL)
	}
}

func TestSearchCapsCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 20; i++ {
			fmt.Fprintf(w, `<div class="game-item"><a class="name" href="/game/%d">Game %d</a></div>`, i, i)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithMaxCandidates(5))
	results, err := client.Search(context.Background(), "game")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("len = %d, want 5", len(results))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := NewClient()
	results, err := client.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results != nil {
		t.Fatalf("results = %v, want nil", results)
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.Search(context.Background(), "portal"); err == nil {
		t.Fatal("expected error for http 403")
	}
}
