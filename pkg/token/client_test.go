package token

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hashgraph-online/gateway-sdk-go/pkg/gateway"
	"github.com/hashgraph-online/gateway-sdk-go/pkg/shared"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gatewayClient, err := gateway.NewClient(gateway.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("failed to create gateway client: %v", err)
	}
	client, err := NewClient(gatewayClient)
	if err != nil {
		t.Fatalf("failed to create token client: %v", err)
	}
	return client
}

func TestNewClientRequiresGateway(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Fatal("expected error for nil gateway client")
	}
}

func TestCreateToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tokens" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["name"] != "Demo Points" || body["symbol"] != "DEMO" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Write([]byte(`{"id":"op-1","status":"PENDING"}`))
	}))

	operation, err := client.CreateToken(context.Background(), CreateTokenOptions{
		Name:   "Demo Points",
		Symbol: "DEMO",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operation.ID != "op-1" {
		t.Fatalf("unexpected operation id %q", operation.ID)
	}
}

func TestCreateTokenValidation(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	cases := []CreateTokenOptions{
		{Symbol: "DEMO"},
		{Name: "Demo Points"},
		{Name: "Demo Points", Symbol: "DEMO", Decimals: -1},
		{Name: "Demo Points", Symbol: "DEMO", InitialSupply: -5},
		{Name: "Demo Points", Symbol: "DEMO", TreasuryAccountID: "treasury"},
	}
	for index, options := range cases {
		_, err := client.CreateToken(context.Background(), options)
		if err == nil {
			t.Fatalf("case %d: expected validation error", index)
		}
		if shared.ErrorCode(err) != shared.CodeValidation {
			t.Fatalf("case %d: unexpected error code %q", index, shared.ErrorCode(err))
		}
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no requests for invalid input, got %d", got)
	}
}

func TestMintToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/0.0.555/mint" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body struct {
			Amount float64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body.Amount != 1000 {
			t.Errorf("unexpected amount %v", body.Amount)
		}
		w.Write([]byte(`{"id":"op-2","status":"PENDING"}`))
	}))

	operation, err := client.MintToken(context.Background(), "0.0.555", 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operation.ID != "op-2" {
		t.Fatalf("unexpected operation id %q", operation.ID)
	}
}

func TestMintTokenRejectsBadAmounts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	for _, amount := range []float64{0, -1, math.NaN(), math.Inf(1), shared.MaxSafeAmount * 2} {
		if _, err := client.MintToken(context.Background(), "0.0.555", amount); err == nil {
			t.Fatalf("expected error for amount %v", amount)
		}
	}
}

func TestMintNFT(t *testing.T) {
	metadata := [][]byte{[]byte("ipfs://meta-1"), []byte("ipfs://meta-2")}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/0.0.777/nfts" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body struct {
			Metadata []string `json:"metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if len(body.Metadata) != 2 {
			t.Fatalf("expected 2 metadata entries, got %d", len(body.Metadata))
		}
		decoded, err := base64.StdEncoding.DecodeString(body.Metadata[0])
		if err != nil || string(decoded) != "ipfs://meta-1" {
			t.Errorf("unexpected first entry %q (%v)", body.Metadata[0], err)
		}
		w.Write([]byte(`{"id":"op-3","status":"PENDING"}`))
	}))

	operation, err := client.MintNFT(context.Background(), "0.0.777", metadata)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operation.ID != "op-3" {
		t.Fatalf("unexpected operation id %q", operation.ID)
	}
}

func TestMintNFTValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	if _, err := client.MintNFT(context.Background(), "0.0.777", nil); err == nil {
		t.Fatal("expected error for empty batch")
	}

	oversized := make([]byte, MaxNFTMetadataBytes+1)
	if _, err := client.MintNFT(context.Background(), "0.0.777", [][]byte{oversized}); err == nil {
		t.Fatal("expected error for oversized metadata")
	}

	tooMany := make([][]byte, MaxNFTBatchSize+1)
	for i := range tooMany {
		tooMany[i] = []byte("m")
	}
	if _, err := client.MintNFT(context.Background(), "0.0.777", tooMany); err == nil {
		t.Fatal("expected error for oversized batch")
	}

	if _, err := client.MintNFT(context.Background(), "0.0.777", [][]byte{nil}); err == nil {
		t.Fatal("expected error for empty metadata entry")
	}
}

func TestTransferToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/0.0.555/transfer" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["fromAccountId"] != "0.0.100" || body["toAccountId"] != "0.0.200" {
			t.Errorf("unexpected accounts: %v", body)
		}
		if body["amount"] != float64(25) {
			t.Errorf("unexpected amount %v", body["amount"])
		}
		w.Write([]byte(`{"id":"op-4","status":"PENDING"}`))
	}))

	operation, err := client.TransferToken(context.Background(), TransferOptions{
		TokenID:       "0.0.555",
		FromAccountID: "0.0.100",
		ToAccountID:   "0.0.200",
		Amount:        25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operation.ID != "op-4" {
		t.Fatalf("unexpected operation id %q", operation.ID)
	}
}

func TestTransferTokenValidation(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	cases := []TransferOptions{
		{TokenID: "bad", FromAccountID: "0.0.100", ToAccountID: "0.0.200", Amount: 1},
		{TokenID: "0.0.555", FromAccountID: "alice", ToAccountID: "0.0.200", Amount: 1},
		{TokenID: "0.0.555", FromAccountID: "0.0.100", ToAccountID: "bob", Amount: 1},
		{TokenID: "0.0.555", FromAccountID: "0.0.100", ToAccountID: "0.0.100", Amount: 1},
		{TokenID: "0.0.555", FromAccountID: "0.0.100", ToAccountID: "0.0.200", Amount: 0},
	}
	for index, options := range cases {
		if _, err := client.TransferToken(context.Background(), options); err == nil {
			t.Fatalf("case %d: expected validation error", index)
		}
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no requests for invalid input, got %d", got)
	}
}

func TestAssociateToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/0.0.555/associate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["accountId"] != "0.0.300" {
			t.Errorf("unexpected account %v", body["accountId"])
		}
		w.Write([]byte(`{"id":"op-5","status":"PENDING"}`))
	}))

	operation, err := client.AssociateToken(context.Background(), "0.0.300", "0.0.555")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operation.ID != "op-5" {
		t.Fatalf("unexpected operation id %q", operation.ID)
	}
}

func TestGetTokenInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tokens/0.0.555" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"tokenId":"0.0.555","name":"Demo Points","symbol":"DEMO","decimals":2,"totalSupply":100000}`))
	}))

	info, err := client.GetTokenInfo(context.Background(), "0.0.555")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.TokenID != "0.0.555" || info.Decimals != 2 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestGetBalances(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts/0.0.300/balances" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"accountId": "0.0.300",
			"balances": [
				{"tokenId":"0.0.555","balance":150,"decimals":2},
				{"tokenId":"0.0.777","balance":3,"decimals":0}
			]
		}`))
	}))

	balances, err := client.GetBalances(context.Background(), "0.0.300")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}
	if balances[0].TokenID != "0.0.555" || balances[0].Balance != 150 {
		t.Fatalf("unexpected balance entry: %+v", balances[0])
	}
}
