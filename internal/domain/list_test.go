package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestShoppingListSupermarketsFirstSeenOrder(t *testing.T) {
	list := ShoppingList{
		{ProductID: 1, ProductName: "Milk", Offers: []Offer{{Supermarket: "B"}, {Supermarket: "A"}}},
		{ProductID: 2, ProductName: "Bread", Offers: []Offer{{Supermarket: "A"}, {Supermarket: "C"}}},
	}

	got := list.Supermarkets()
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Supermarkets() = %v, want %v", got, want)
	}
}

func TestShoppingListContains(t *testing.T) {
	list := ShoppingList{{ProductID: 7, ProductName: "Rice"}}
	if !list.Contains(7) {
		t.Fatalf("expected list to contain product 7")
	}
	if list.Contains(8) {
		t.Fatalf("did not expect list to contain product 8")
	}
}

func TestListEntryOfferAtFirstMatchWins(t *testing.T) {
	entry := ListEntry{
		ProductID: 1,
		Offers: []Offer{
			{Supermarket: "A", Unit: "first"},
			{Supermarket: "A", Unit: "second"},
		},
	}

	offer, ok := entry.OfferAt("A")
	if !ok || offer.Unit != "first" {
		t.Fatalf("OfferAt(A) = %+v, %v; want first offer", offer, ok)
	}
	if _, ok := entry.OfferAt("Z"); ok {
		t.Fatalf("OfferAt(Z) should not match")
	}
}

func TestOfferPricesEncodeAsNumbers(t *testing.T) {
	var offer Offer
	if err := json.Unmarshal([]byte(`{"valor": 4.99, "supermercado_nome": "A"}`), &offer); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	data, err := json.Marshal(offer)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"valor":4.99`) {
		t.Fatalf("encoded offer %s does not carry a numeric price", data)
	}
}

func TestOfferDisplayName(t *testing.T) {
	tests := []struct {
		offer Offer
		want  string
	}{
		{offer: Offer{ProductName: "Arroz"}, want: "Arroz"},
		{offer: Offer{ProductName: "Arroz", Notes: "5kg"}, want: "Arroz (5kg)"},
		{offer: Offer{ProductName: "Arroz", Notes: "  "}, want: "Arroz"},
	}

	for _, tt := range tests {
		if got := tt.offer.DisplayName(); got != tt.want {
			t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestHistoryPointDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "iso", raw: "2025-03-09", want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{name: "http", raw: "Sun, 09 Mar 2025 00:00:00 GMT", want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", raw: "2025-03-09T00:00:00Z", want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", raw: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HistoryPoint{RecordDate: tt.raw}.Date()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Date() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Fatalf("Date() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOfferFilterParamsSkipsEmpty(t *testing.T) {
	got := OfferFilter{Search: "leite", Date: "2025-03-09"}.Params()
	want := map[string]string{"busca": "leite", "data": "2025-03-09"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Params() = %v, want %v", got, want)
	}
}
