package types

import (
	"strings"
	"time"
)

// ItemRecord is the persisted identity of a catalog member.
type ItemRecord struct {
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StratumRecord is one persisted trait value in one stratum of one member.
type StratumRecord struct {
	ItemID    string    `json:"item_id"`
	StratumID string    `json:"stratum_id"`
	Trait     string    `json:"trait"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// stratumKeySep separates the parts of a StratumRecord key. Item ids, stratum
// ids and trait names never contain it.
const stratumKeySep = "\x1f"

// Key returns the composite ID used by the strata table.
func (r StratumRecord) Key() string {
	return StratumKey(r.ItemID, r.StratumID, r.Trait)
}

// StratumKey builds the composite ID for the strata table.
func StratumKey(itemID, stratumID, trait string) string {
	return itemID + stratumKeySep + stratumID + stratumKeySep + trait
}

// SplitStratumKey is the inverse of StratumKey. The last result is false when
// key does not have three parts.
func SplitStratumKey(key string) (itemID, stratumID, trait string, ok bool) {
	parts := strings.Split(key, stratumKeySep)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
