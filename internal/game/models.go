package game

import (
	"time"

	"gorm.io/gorm"
)

// Combatant is the battle-relevant snapshot of an NFT. The flat stat layout
// is the canonical schema; legacy payloads with a nested `attributes`
// object are converted by FromNested before they reach the resolver.
type Combatant struct {
	ID         string  `json:"id" gorm:"primaryKey;size:80"`
	Name       string  `json:"name"`
	Owner      string  `json:"owner" gorm:"index"`
	Strength   float64 `json:"strength"`
	Speed      float64 `json:"speed"`
	Luck       float64 `json:"luck"`
	Level      int     `json:"level"`
	Experience float64 `json:"experience"`
	ImageURL   string  `json:"imageUrl"`
	Rarity     Rarity  `json:"rarity" gorm:"size:16"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// nft_combatants holds the seeded roster and every minted NFT, with the
// experience they earned in battle.
func (Combatant) TableName() string { return "nft_combatants" }

// BattleOutcome is the result of a single resolution. Winner and Loser
// point at the two combatants passed to the resolver, never copies.
type BattleOutcome struct {
	Winner *Combatant `json:"winner"`
	Loser  *Combatant `json:"loser"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp        int64 `json:"timestamp"`
	ExperienceGained int   `json:"experienceGained"`
	DamageDealt      int   `json:"damageDealt"`
}

// SettlementStatus tracks whether a locally resolved battle has been handed
// to the external settlement relay.
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "pending"
	SettlementSettled SettlementStatus = "settled"
	SettlementFailed  SettlementStatus = "failed"
)

// BattleRecord is one entry of a wallet's bounded battle history.
type BattleRecord struct {
	gorm.Model
	WalletAddress    string           `json:"wallet_address" gorm:"index"`
	WinnerID         string           `json:"winner_id"`
	WinnerName       string           `json:"winner_name"`
	WinnerOwner      string           `json:"winner_owner"`
	LoserID          string           `json:"loser_id"`
	LoserName        string           `json:"loser_name"`
	LoserOwner       string           `json:"loser_owner"`
	Timestamp        int64            `json:"timestamp"`
	ExperienceGained int              `json:"experience_gained"`
	DamageDealt      int              `json:"damage_dealt"`
	Settlement       SettlementStatus `json:"settlement" gorm:"index;size:16"`
	SettlementRef    string           `json:"settlement_ref"`
	Attempts         int              `json:"attempts"`
	LastError        string           `json:"last_error"`

	// Stats each side fought with, so history does not drift as NFTs
	// earn experience later.
	WinnerSnapshot Combatant `json:"-" gorm:"serializer:json"`
	LoserSnapshot  Combatant `json:"-" gorm:"serializer:json"`
}

// battle_history holds one row per resolved battle, kept per wallet and
// pruned to the configured limit.
func (BattleRecord) TableName() string { return "battle_history" }

// NewBattleRecord snapshots an outcome for persistence. The record starts in
// the pending settlement state.
func NewBattleRecord(wallet string, o BattleOutcome) BattleRecord {
	rec := BattleRecord{
		WalletAddress:    wallet,
		Timestamp:        o.Timestamp,
		ExperienceGained: o.ExperienceGained,
		DamageDealt:      o.DamageDealt,
		Settlement:       SettlementPending,
	}
	if o.Winner != nil {
		rec.WinnerID = o.Winner.ID
		rec.WinnerName = o.Winner.Name
		rec.WinnerOwner = o.Winner.Owner
		rec.WinnerSnapshot = *o.Winner
	}
	if o.Loser != nil {
		rec.LoserID = o.Loser.ID
		rec.LoserName = o.Loser.Name
		rec.LoserOwner = o.Loser.Owner
		rec.LoserSnapshot = *o.Loser
	}
	return rec
}

// Outcome rebuilds the BattleOutcome as it was resolved, from the stat
// snapshots. Rows without a snapshot yield a stub holding the id, name and
// owner captured at battle time.
func (r BattleRecord) Outcome() BattleOutcome {
	side := func(snap Combatant, id, name, owner string) *Combatant {
		if snap.ID != "" {
			c := snap
			return &c
		}
		return &Combatant{ID: id, Name: name, Owner: owner}
	}
	return BattleOutcome{
		Winner:           side(r.WinnerSnapshot, r.WinnerID, r.WinnerName, r.WinnerOwner),
		Loser:            side(r.LoserSnapshot, r.LoserID, r.LoserName, r.LoserOwner),
		Timestamp:        r.Timestamp,
		ExperienceGained: r.ExperienceGained,
		DamageDealt:      r.DamageDealt,
	}
}

// Profile stores a wallet's session state and aggregate battle stats.
type Profile struct {
	gorm.Model
	Address       string `json:"address" gorm:"uniqueIndex;size:80"`
	DisplayName   string `json:"display_name"`
	SessionState  string `json:"session_state"`
	SelectedNFTID string `json:"selected_nft_id"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	TotalBattles  int    `json:"total_battles"`
	HighestLevel  int    `json:"highest_level"`
}

// player_profiles holds one row per wallet address with its session and
// leaderboard counters.
func (Profile) TableName() string { return "player_profiles" }
