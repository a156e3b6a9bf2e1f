package service

import (
	"sort"

	"github.com/0shq/ddc/internal/game"
	"github.com/0shq/ddc/internal/storage"
)

// mockRepo is an in-memory stand-in for storage.Repository. Values are
// copied in and out the way a database round trip would.
type mockRepo struct {
	nfts     map[string]game.Combatant
	profiles map[string]game.Profile
	records  []game.BattleRecord
	nextID   uint

	clears       []string
	recordCalls  int
	historyLimit int
}

func newMockRepo(nfts ...game.Combatant) *mockRepo {
	m := &mockRepo{nfts: map[string]game.Combatant{}, profiles: map[string]game.Profile{}}
	for _, n := range nfts {
		m.nfts[n.ID] = n
	}
	return m
}

// connect stores a connected profile for address with the given selection.
func (m *mockRepo) connect(address, selected string) {
	m.nextID++
	p := game.Profile{Address: address, SessionState: "connected", SelectedNFTID: selected}
	p.ID = m.nextID
	m.profiles[address] = p
}

func (m *mockRepo) GetNFTByID(id string) (*game.Combatant, error) {
	n, ok := m.nfts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &n, nil
}

func (m *mockRepo) GetNFTsByOwner(owner string) ([]game.Combatant, error) {
	var out []game.Combatant
	for _, n := range m.nfts {
		if n.Owner == owner {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepo) CreateNFT(c *game.Combatant) error {
	m.nfts[c.ID] = *c
	return nil
}

func (m *mockRepo) GetProfile(address string) (*game.Profile, error) {
	if p, ok := m.profiles[address]; ok {
		return &p, nil
	}
	return &game.Profile{Address: address, SessionState: "disconnected"}, nil
}

func (m *mockRepo) SaveProfile(p *game.Profile) error {
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	m.profiles[p.Address] = *p
	return nil
}

func (m *mockRepo) ClearSession(address string) error {
	m.clears = append(m.clears, address)
	if p, ok := m.profiles[address]; ok {
		p.SelectedNFTID = ""
		m.profiles[address] = p
	}
	kept := m.records[:0]
	for _, r := range m.records {
		if r.WalletAddress != address {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

func (m *mockRepo) RecordBattle(rec *game.BattleRecord, winner, loser *game.Combatant, historyLimit int) error {
	m.recordCalls++
	m.historyLimit = historyLimit
	if n, ok := m.nfts[winner.ID]; ok {
		n.Experience += float64(rec.ExperienceGained)
		m.nfts[winner.ID] = n
	}
	bump := func(owner string, win bool) {
		p := m.profiles[owner]
		p.Address = owner
		p.TotalBattles++
		if win {
			p.Wins++
		} else {
			p.Losses++
		}
		m.profiles[owner] = p
	}
	bump(winner.Owner, true)
	bump(loser.Owner, false)
	m.nextID++
	rec.ID = m.nextID
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockRepo) FindPendingSettlements(limit int) ([]game.BattleRecord, error) {
	var out []game.BattleRecord
	for _, r := range m.records {
		if r.Settlement == game.SettlementPending && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateBattleRecord(rec *game.BattleRecord) error {
	for i := range m.records {
		if m.records[i].ID == rec.ID {
			m.records[i] = *rec
			return nil
		}
	}
	return storage.ErrNotFound
}
