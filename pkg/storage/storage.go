// Package storage persists ledger snapshots to a durable medium. A medium
// exposes two named slots holding opaque serialized payloads; it has no
// knowledge of ledger rules. Implementations exist for memory, the local
// filesystem, and postgres.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/soldeapp/clientledger/pkg/domain"
)

// Slot names for the two logical collections.
const (
	SlotClients      = "clients"
	SlotTransactions = "transactions"
)

// ErrSlotNotFound is returned by Load when a slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// Store is the durable medium boundary: load and save of opaque payloads
// keyed by slot name.
type Store interface {
	Load(slot string) ([]byte, error)
	Save(slot string, data []byte) error
}

// Snapshot is the full serialized state of the ledger: all clients in
// insertion order and all transactions in per-client chronological order.
type Snapshot struct {
	Clients      []domain.Client
	Transactions []domain.Transaction
}

// SaveSnapshot serializes the snapshot into the two slots.
func SaveSnapshot(st Store, snap *Snapshot) error {
	clients, err := json.Marshal(snap.Clients)
	if err != nil {
		return fmt.Errorf("encode %s: %w", SlotClients, err)
	}
	transactions, err := json.Marshal(snap.Transactions)
	if err != nil {
		return fmt.Errorf("encode %s: %w", SlotTransactions, err)
	}
	if err := st.Save(SlotClients, clients); err != nil {
		return fmt.Errorf("save %s: %w", SlotClients, err)
	}
	if err := st.Save(SlotTransactions, transactions); err != nil {
		return fmt.Errorf("save %s: %w", SlotTransactions, err)
	}
	return nil
}

// LoadSnapshot reads both slots and decodes them. It returns ErrSlotNotFound
// when neither slot has ever been written; a single missing slot decodes as
// an empty collection.
func LoadSnapshot(st Store) (*Snapshot, error) {
	clientsRaw, clientsErr := st.Load(SlotClients)
	transactionsRaw, transactionsErr := st.Load(SlotTransactions)
	if errors.Is(clientsErr, ErrSlotNotFound) && errors.Is(transactionsErr, ErrSlotNotFound) {
		return nil, ErrSlotNotFound
	}

	snap := &Snapshot{}
	switch {
	case clientsErr == nil:
		if err := json.Unmarshal(clientsRaw, &snap.Clients); err != nil {
			return nil, fmt.Errorf("decode %s: %w", SlotClients, err)
		}
	case !errors.Is(clientsErr, ErrSlotNotFound):
		return nil, fmt.Errorf("load %s: %w", SlotClients, clientsErr)
	}
	switch {
	case transactionsErr == nil:
		if err := json.Unmarshal(transactionsRaw, &snap.Transactions); err != nil {
			return nil, fmt.Errorf("decode %s: %w", SlotTransactions, err)
		}
	case !errors.Is(transactionsErr, ErrSlotNotFound):
		return nil, fmt.Errorf("load %s: %w", SlotTransactions, transactionsErr)
	}
	return snap, nil
}
