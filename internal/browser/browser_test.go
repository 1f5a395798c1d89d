package browser

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"comparador/client/internal/client"
	"comparador/client/internal/config"
	"comparador/client/internal/domain"

	"github.com/jarcoal/httpmock"
)

const testBaseURL = "http://api.test/api"

func newTestBrowser(t *testing.T) (*Browser, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	pc := client.NewPriceClient(config.APIConfig{BaseURL: testBaseURL, Timeout: 5},
		client.WithHTTPClient(&http.Client{Transport: transport}))
	return New(pc), transport
}

func TestLoadFilters(t *testing.T) {
	b, transport := newTestBrowser(t)
	transport.RegisterResponder("GET", testBaseURL+"/filtros", httpmock.NewStringResponder(200,
		`{"supermercados":[{"id":1,"nome":"A"}],"categorias":[]}`))

	filters := b.LoadFilters(context.Background())
	if len(filters.Supermarkets) != 1 || filters.Supermarkets[0].Name != "A" {
		t.Fatalf("filters = %+v", filters)
	}
}

func TestLoadFiltersFailureIsEmpty(t *testing.T) {
	b, transport := newTestBrowser(t)
	transport.RegisterResponder("GET", testBaseURL+"/filtros", httpmock.NewStringResponder(500, ""))

	filters := b.LoadFilters(context.Background())
	if len(filters.Supermarkets) != 0 || len(filters.Categories) != 0 {
		t.Fatalf("filters = %+v, want empty", filters)
	}
}

func TestQueryTables(t *testing.T) {
	tests := []struct {
		name        string
		responder   httpmock.Responder
		wantOffers  int
		wantMessage string
		wantErr     bool
	}{
		{
			name:       "offers",
			responder:  httpmock.NewStringResponder(200, `[{"id_produto":1,"produto_nome":"Leite","valor":4.99,"supermercado_nome":"A","categoria_nome":"Laticínios"}]`),
			wantOffers: 1,
		},
		{
			name:        "empty",
			responder:   httpmock.NewStringResponder(200, `[]`),
			wantMessage: MessageNoOffers,
		},
		{
			name:        "server error",
			responder:   httpmock.NewStringResponder(500, ""),
			wantMessage: MessageLoadError,
			wantErr:     true,
		},
		{
			name:        "malformed",
			responder:   httpmock.NewStringResponder(200, `{"oops":true}`),
			wantMessage: MessageLoadError,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, transport := newTestBrowser(t)
			transport.RegisterResponder("GET", testBaseURL+"/ofertas", tt.responder)

			table, err := b.Query(context.Background(), domain.OfferFilter{Date: "2025-03-09"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Query() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(table.Offers) != tt.wantOffers || table.Message != tt.wantMessage {
				t.Fatalf("table = %+v", table)
			}
			if b.Table() != table {
				t.Fatalf("current table was not replaced")
			}
		})
	}
}

func TestQueryDropsSupersededResponse(t *testing.T) {
	b, transport := newTestBrowser(t)

	started := make(chan struct{})
	release := make(chan struct{})
	transport.RegisterResponder("GET", testBaseURL+"/ofertas", func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("busca") == "slow" {
			close(started)
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-release:
			}
			return httpmock.NewStringResponse(200, `[{"produto_nome":"Old","valor":1,"supermercado_nome":"A"}]`), nil
		}
		return httpmock.NewStringResponse(200, `[{"produto_nome":"New","valor":2,"supermercado_nome":"B"}]`), nil
	})

	slowErr := make(chan error, 1)
	go func() {
		_, err := b.Query(context.Background(), domain.OfferFilter{Search: "slow"})
		slowErr <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatalf("slow query never reached the transport")
	}

	table, err := b.Query(context.Background(), domain.OfferFilter{Search: "fast"})
	if err != nil {
		t.Fatalf("fast Query() error = %v", err)
	}
	close(release)

	select {
	case err := <-slowErr:
		if !errors.Is(err, ErrStale) {
			t.Fatalf("slow Query() error = %v, want ErrStale", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("slow query did not return")
	}

	current := b.Table()
	if current != table || len(current.Offers) != 1 || current.Offers[0].ProductName != "New" {
		t.Fatalf("current table = %+v, want the fast query's", current)
	}
}

func TestShowHistoryReplacesChart(t *testing.T) {
	b, transport := newTestBrowser(t)

	var calls int32
	transport.RegisterResponder("GET", testBaseURL+"/produto/1/historico", func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return httpmock.NewStringResponse(200, `[
			{"data_registro":"2025-03-01","valor":5.2,"supermercado_nome":"A"},
			{"data_registro":"2025-03-01","valor":4.9,"supermercado_nome":"B"},
			{"data_registro":"Sun, 02 Mar 2025 00:00:00 GMT","valor":5.0,"supermercado_nome":"A"}
		]`), nil
	})
	transport.RegisterResponder("GET", testBaseURL+"/produto/2/historico", httpmock.NewStringResponder(200,
		`[{"data_registro":"2025-03-01","valor":3,"supermercado_nome":"C"}]`))
	transport.RegisterResponder("GET", testBaseURL+"/produto/3/historico", httpmock.NewStringResponder(500, ""))

	ctx := context.Background()
	first, err := b.ShowHistory(ctx, 1, "Leite")
	if err != nil {
		t.Fatalf("ShowHistory(1) error = %v", err)
	}
	if len(first.Points) != 3 {
		t.Fatalf("points = %d, want 3 (duplicate dates kept)", len(first.Points))
	}
	labels := first.Labels()
	if labels[0] != "01/03/2025" || labels[1] != "01/03/2025" || labels[2] != "02/03/2025" {
		t.Fatalf("labels = %v", labels)
	}
	if first.Points[1].Supermarket != "B" {
		t.Fatalf("point supermarket = %q", first.Points[1].Supermarket)
	}

	second, err := b.ShowHistory(ctx, 2, "Pão")
	if err != nil {
		t.Fatalf("ShowHistory(2) error = %v", err)
	}
	if !first.Destroyed() || second.Destroyed() || b.Chart() != second {
		t.Fatalf("previous chart must be destroyed before the new one is current")
	}

	if _, err := b.ShowHistory(ctx, 3, "Broken"); err == nil {
		t.Fatalf("expected error for failing history")
	}
	if b.Chart() != second || second.Destroyed() {
		t.Fatalf("failed fetch must leave the current chart in place")
	}

	third, err := b.ShowHistory(ctx, 1, "Leite")
	if err != nil {
		t.Fatalf("ShowHistory(1) again error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("history fetched %d times, want 2 (no reuse of an earlier fetch)", got)
	}
	if !second.Destroyed() || b.Chart() != third || len(third.Points) != 3 {
		t.Fatalf("repeat showing must draw a fresh chart")
	}
}

func TestChartValuesAndTitle(t *testing.T) {
	chart := &Chart{ProductName: "Leite", Points: []domain.HistoryPoint{
		{RecordDate: "2025-03-01", Supermarket: "A"},
		{RecordDate: "not a date", Supermarket: "B"},
	}}
	if chart.Title() != "Price history - Leite" {
		t.Fatalf("title = %q", chart.Title())
	}
	if labels := chart.Labels(); labels[1] != "not a date" {
		t.Fatalf("labels = %v", labels)
	}
	if values := chart.Values(); len(values) != 2 || values[0] != 0 {
		t.Fatalf("values = %v", values)
	}
}
