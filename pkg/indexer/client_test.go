package indexer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientTestnet(t *testing.T) {
	client, err := NewClient(Config{Network: "testnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != "https://testnet-idx.voi.nodely.io" {
		t.Fatalf("unexpected baseURL: %s", client.baseURL)
	}
}

func TestNewClientMainnet(t *testing.T) {
	client, err := NewClient(Config{Network: "mainnet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.BaseURL() != "https://mainnet-idx.voi.nodely.dev" {
		t.Fatalf("unexpected baseURL: %s", client.BaseURL())
	}
}

func TestNewClientCustomBaseURL(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://idx.example.com/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != "https://idx.example.com" {
		t.Fatalf("unexpected baseURL: %s", client.baseURL)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "ftp://idx.example.com"}); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
	if _, err := NewClient(Config{Network: "betanet"}); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestGetTransactionSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/transactions/TXID1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get(TokenHeader) != "secret" {
			t.Fatalf("missing token header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current-round": 120,
			"transaction": {
				"id": "TXID1",
				"confirmed-round": 101,
				"sender": "SENDER",
				"fee": 15000,
				"tx-type": "appl",
				"logs": ["FR98dQE="],
				"application-transaction": {"application-id": 797609, "on-completion": "noop", "application-args": ["WHWfog=="]}
			}
		}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL, Token: "secret"})
	txn, err := client.GetTransaction(context.Background(), "TXID1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn == nil || txn.ConfirmedRound != 101 {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
	if txn.ApplicationTransaction.ApplicationId != 797609 {
		t.Fatalf("unexpected application fields: %+v", txn.ApplicationTransaction)
	}
	if got := txn.ApplicationTransaction.ApplicationArgs[0]; len(got) != 4 || got[0] != 0x58 || got[3] != 0xa2 {
		t.Fatalf("unexpected args: %x", got)
	}
	if len(txn.Logs) != 1 || len(txn.Logs[0]) != 5 || txn.Logs[0][4] != 0x01 {
		t.Fatalf("unexpected logs: %x", txn.Logs)
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no transaction found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	txn, err := client.GetTransaction(context.Background(), "MISSING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn != nil {
		t.Fatalf("expected nil transaction, got %+v", txn)
	}
}

func TestGetTransactionEmptyID(t *testing.T) {
	client, _ := NewClient(Config{})
	if _, err := client.GetTransaction(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty transaction ID")
	}
}

func TestLookupTransactionsSkipsUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/transactions/A" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"current-round": 9, "transaction": {"id": "A", "confirmed-round": 7}}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	found, err := client.LookupTransactions(context.Background(), []string{"A", "B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found["A"].ConfirmedRound != 7 {
		t.Fatalf("unexpected result: %+v", found)
	}
}

func TestGetTransactionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	if _, err := client.GetTransaction(context.Background(), "A"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestGetAccountTransactionsFollowsNextToken(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/v2/transactions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("address") != "ADDR" || query.Get("application-id") != "797609" || query.Get("limit") != "2" {
			t.Fatalf("missing filters: %s", r.URL.RawQuery)
		}
		switch query.Get("next") {
		case "":
			_, _ = w.Write([]byte(`{"current-round": 9, "next-token": "page2", "transactions": [{"id": "T1"}, {"id": "T2"}]}`))
		case "page2":
			_, _ = w.Write([]byte(`{"current-round": 9, "transactions": [{"id": "T3"}]}`))
		default:
			t.Fatalf("unexpected next token %q", query.Get("next"))
		}
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	txns, err := client.GetAccountTransactions(context.Background(), "ADDR", TransactionQuery{ApplicationID: 797609, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 3 || txns[2].Id != "T3" {
		t.Fatalf("unexpected transactions: %+v", txns)
	}
	if calls != 2 {
		t.Fatalf("expected 2 requests, got %d", calls)
	}
}

func TestGetAccountTransactionsPageLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"current-round": 9, "next-token": "more", "transactions": [{"id": "T"}]}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	txns, err := client.GetAccountTransactions(context.Background(), "ADDR", TransactionQuery{Pages: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 3 || calls != 3 {
		t.Fatalf("expected 3 pages, got %d transactions over %d calls", len(txns), calls)
	}
}

func TestGetBox(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/applications/797611/box" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("name") != "b64:cnN2cF8=" {
			t.Fatalf("unexpected box name: %s", r.URL.Query().Get("name"))
		}
		_, _ = w.Write([]byte(`{"name": "cnN2cF8=", "round": 9, "value": "AQID"}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	value, err := client.GetBox(context.Background(), 797611, []byte("rsvp_"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(value) != 3 || value[2] != 3 {
		t.Fatalf("unexpected box value: %x", value)
	}
}

func TestGetBoxNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	_, err := client.GetBox(context.Background(), 1, []byte("missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetApplicationLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("txid") != "TX" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.URL.Path != "/v2/applications/5/logs" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"application-id": 5, "current-round": 9, "log-data": [{"txid": "TX", "logs": ["YQ==", "Yg=="]}]}`))
	}))
	defer server.Close()

	client, _ := NewClient(Config{BaseURL: server.URL})
	logs, err := client.GetApplicationLogs(context.Background(), 5, "TX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 || string(logs[1]) != "b" {
		t.Fatalf("unexpected logs: %q", logs)
	}
}

func TestNewClientSendsCustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "key" {
			t.Fatalf("missing custom header")
		}
		_, _ = w.Write([]byte(`{"current-round": 9, "transaction": {"id": "A", "confirmed-round": 3}}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL, Headers: map[string]string{"X-Api-Key": "key"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	txn, err := client.GetTransaction(context.Background(), "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ConfirmedRound != 3 {
		t.Fatalf("unexpected round %d", txn.ConfirmedRound)
	}
}
