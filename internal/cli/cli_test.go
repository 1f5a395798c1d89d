package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"comparador/client/internal/container"
	"comparador/client/internal/render"
	"comparador/client/internal/storage"

	"github.com/jarcoal/httpmock"
)

const baseURL = "http://api.test/api"

func newTransport() *httpmock.MockTransport {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", baseURL+"/filtros", httpmock.NewStringResponder(200,
		`{"supermercados":[{"id":1,"nome":"Atacadão"}],"categorias":[{"id":3,"nome":"Padaria"}]}`))
	transport.RegisterResponder("GET", baseURL+"/ofertas", httpmock.NewStringResponder(200,
		`[{"id_produto":5,"produto_nome":"Pão de Forma","observacoes":"500g","valor":6.5,"unidade":"un","supermercado_nome":"B","categoria_nome":"Padaria","data_registro":"2024-05-01"}]`))
	transport.RegisterResponder("GET", baseURL+"/produtos-em-oferta", httpmock.NewStringResponder(200,
		`[{"id":5,"nome":"Pão de Forma","valor":6.5,"supermercado_nome":"B"},{"id":7,"nome":"Leite","valor":4.99,"supermercado_nome":"A"}]`))
	transport.RegisterResponder("GET", baseURL+"/produto/todas-ofertas-hoje", httpmock.NewStringResponder(200,
		`[{"valor":6.5,"supermercado_nome":"B"},{"valor":7.2,"supermercado_nome":"A"}]`))
	transport.RegisterResponder("GET", baseURL+"/produto/5/historico", httpmock.NewStringResponder(200,
		`[{"data_registro":"2024-04-01","valor":7.0,"supermercado_nome":"A"},{"data_registro":"2024-05-01","valor":6.5,"supermercado_nome":"B"}]`))
	return transport
}

func run(t *testing.T, transport http.RoundTripper, store storage.ListStore, args ...string) string {
	t.Helper()

	cmd := NewRootCommand(
		container.WithHTTPClient(&http.Client{Transport: transport}),
		container.WithStore(store),
	)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func setupEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COMPARADOR_API_BASE_URL", baseURL)
	t.Setenv("COMPARADOR_STORAGE_BACKEND", "memory")
}

func TestFiltersCommand(t *testing.T) {
	setupEnv(t)

	out := run(t, newTransport(), storage.NewMemoryStore(), "filters")
	if !strings.Contains(out, "Atacadão") || !strings.Contains(out, "Padaria") {
		t.Fatalf("output = %q", out)
	}
}

func TestOffersCommand(t *testing.T) {
	setupEnv(t)
	transport := newTransport()

	out := run(t, transport, storage.NewMemoryStore(), "offers", "--search", "pão", "--date", "2024-05-01")
	if !strings.Contains(out, "Pão de Forma (500g)") || !strings.Contains(out, "R$ 6,50") {
		t.Fatalf("output = %q", out)
	}
	if n := transport.GetCallCountInfo()["GET "+baseURL+"/ofertas"]; n != 1 {
		t.Fatalf("offers calls = %d, want 1", n)
	}
}

func TestOffersCommandRejectsBadInput(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{
		{"offers", "--date", "01/05/2024"},
		{"offers", "--format", "pdf"},
	} {
		cmd := NewRootCommand(
			container.WithHTTPClient(&http.Client{Transport: newTransport()}),
			container.WithStore(storage.NewMemoryStore()),
		)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := cmd.ExecuteContext(context.Background()); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestHistoryCommand(t *testing.T) {
	setupEnv(t)

	out := run(t, newTransport(), storage.NewMemoryStore(), "history", "5", "--name", "Pão de Forma")
	if !strings.Contains(out, "Price history - Pão de Forma") {
		t.Fatalf("output = %q", out)
	}
}

func TestListWorkflow(t *testing.T) {
	setupEnv(t)
	transport := newTransport()
	store := storage.NewMemoryStore()

	out := run(t, transport, store, "suggest", "pao")
	if !strings.Contains(out, "Pão de Forma") || strings.Contains(out, "Leite") {
		t.Fatalf("suggest output = %q", out)
	}

	out = run(t, transport, store, "list", "add", "pao")
	if !strings.Contains(out, "B [complete]  Total: R$ 6,50") {
		t.Fatalf("add output = %q", out)
	}

	// Adding the same product again by id is a no-op.
	run(t, transport, store, "list", "add", "5")
	list, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %+v, want one entry", list)
	}

	out = run(t, transport, store, "list", "show")
	if !strings.Contains(out, "A [complete]  Total: R$ 7,20") {
		t.Fatalf("show output = %q", out)
	}

	out = run(t, transport, store, "list", "clear")
	if !strings.Contains(out, render.EmptyListMessage) {
		t.Fatalf("clear output = %q", out)
	}
}

func TestListAddNoMatch(t *testing.T) {
	setupEnv(t)
	store := storage.NewMemoryStore()

	out := run(t, newTransport(), store, "list", "add", "arroz")
	if !strings.Contains(out, render.NoMatchMessage) {
		t.Fatalf("output = %q", out)
	}
	list, _ := store.Load(context.Background())
	if len(list) != 0 {
		t.Fatalf("list = %+v, want empty", list)
	}
}
