// Package dedupe provides shared singleflight groups that collapse
// concurrent duplicate requests from one wallet (a double-clicked battle or
// mint button) into a single execution whose result every caller receives.
package dedupe

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates battle requests keyed by wallet, so one wallet has
// at most one battle in flight.
var BattleGroup singleflight.Group

// MintGroup deduplicates mint requests keyed by "<wallet>|<name key>".
var MintGroup singleflight.Group

// BattleKey builds the BattleGroup key.
func BattleKey(wallet string) string { return wallet }

// MintKey builds the MintGroup key.
func MintKey(wallet, nameKey string) string { return wallet + "|" + nameKey }
