package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/0shq/ddc/internal/constants"
	"github.com/0shq/ddc/internal/game"
)

// Settler hands a locally resolved battle to the authoritative settlement
// layer and returns its reference (a transaction digest for the relay).
type Settler interface {
	Settle(ctx context.Context, rec game.BattleRecord) (string, error)
}

// New returns an HTTPSettler for endpoint, or a LocalSettler when endpoint
// is empty.
func New(endpoint string, timeout time.Duration) Settler {
	if endpoint == "" {
		return LocalSettler{}
	}
	return &HTTPSettler{Endpoint: endpoint, Client: &http.Client{Timeout: timeout}}
}

// LocalSettler marks battles settled without contacting anything.
type LocalSettler struct{}

func (LocalSettler) Settle(_ context.Context, rec game.BattleRecord) (string, error) {
	return "local:" + strconv.FormatUint(uint64(rec.ID), 10), nil
}

// HTTPSettler posts battle records as JSON to a settlement relay.
type HTTPSettler struct {
	Endpoint string
	Client   *http.Client
}

type settleRequest struct {
	BattleID         uint   `json:"battle_id"`
	Wallet           string `json:"wallet"`
	WinnerID         string `json:"winner_id"`
	LoserID          string `json:"loser_id"`
	Timestamp        int64  `json:"timestamp"`
	ExperienceGained int    `json:"experience_gained"`
	DamageDealt      int    `json:"damage_dealt"`
}

type settleResponse struct {
	Digest string `json:"digest"`
	Error  string `json:"error"`
}

var ErrEmptyDigest = errors.New("settlement relay returned no digest")

func (s *HTTPSettler) Settle(ctx context.Context, rec game.BattleRecord) (string, error) {
	body, err := json.Marshal(settleRequest{
		BattleID:         rec.ID,
		Wallet:           rec.WalletAddress,
		WinnerID:         rec.WinnerID,
		LoserID:          rec.LoserID,
		Timestamp:        rec.Timestamp,
		ExperienceGained: rec.ExperienceGained,
		DamageDealt:      rec.DamageDealt,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("settlement request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}
	var out settleResponse
	_ = json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Error != "" {
			return "", fmt.Errorf("settlement relay status %d: %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("settlement relay status %d", resp.StatusCode)
	}
	if out.Digest == "" {
		return "", ErrEmptyDigest
	}
	return out.Digest, nil
}
