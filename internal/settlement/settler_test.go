package settlement

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0shq/ddc/internal/game"
)

func TestLocalSettler(t *testing.T) {
	rec := game.BattleRecord{}
	rec.ID = 12
	ref, err := New("", time.Second).Settle(context.Background(), rec)
	if err != nil || ref != "local:12" {
		t.Fatalf("unexpected local settlement %q (%v)", ref, err)
	}
}

func TestHTTPSettler_Success(t *testing.T) {
	var got settleRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"digest":"0xd1"}`))
	}))
	defer srv.Close()

	rec := game.BattleRecord{WalletAddress: "0xabc", WinnerID: "w", LoserID: "l", DamageDealt: 9}
	rec.ID = 3
	ref, err := New(srv.URL, time.Second).Settle(context.Background(), rec)
	if err != nil || ref != "0xd1" {
		t.Fatalf("unexpected result %q (%v)", ref, err)
	}
	if got.BattleID != 3 || got.WinnerID != "w" || got.DamageDealt != 9 {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestHTTPSettler_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("empty") == "1" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"node unavailable"}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, time.Second).Settle(context.Background(), game.BattleRecord{}); err == nil {
		t.Fatalf("expected error on 502")
	}
	if _, err := New(srv.URL+"?empty=1", time.Second).Settle(context.Background(), game.BattleRecord{}); err != ErrEmptyDigest {
		t.Fatalf("expected ErrEmptyDigest, got %v", err)
	}
}
