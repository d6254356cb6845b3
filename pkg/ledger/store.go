// Package ledger holds the authoritative in-memory state of clients and
// their transactions, and keeps every client partition's running balances
// chronologically consistent across out-of-order inserts, edits and
// deletes.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/soldeapp/clientledger/pkg/domain"
	"github.com/soldeapp/clientledger/pkg/storage"
)

// Store is the single entry point for every ledger mutation.
//
// One RWMutex guards the whole store: a mutator holds the write lock across
// its validate-mutate-recalculate-save cycle, so two mutations against the
// same client can never interleave. Every successful mutation saves a
// snapshot of the whole store, which needs a quiescent view of every
// partition anyway, so per-client locking would buy nothing here.
//
// Entities returned from the store are copies; the store never mutates a
// value it has handed out, and callers cannot corrupt store state through
// a returned pointer.
type Store struct {
	mu      sync.RWMutex
	storage storage.Store
	logger  *slog.Logger

	clients    []*domain.Client // insertion order
	clientByID map[uuid.UUID]*domain.Client
	partitions map[uuid.UUID][]*domain.Transaction // chronological after recalculation
	txClient   map[uuid.UUID]uuid.UUID             // transaction id -> owning client id
}

// New builds a store backed by st. When no snapshot exists yet the default
// data set is installed and persisted immediately. A failed load is logged
// and the store starts empty, working purely in memory until the next
// successful save.
func New(st storage.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage:    st,
		logger:     logger,
		clientByID: make(map[uuid.UUID]*domain.Client),
		partitions: make(map[uuid.UUID][]*domain.Transaction),
		txClient:   make(map[uuid.UUID]uuid.UUID),
	}

	snap, err := storage.LoadSnapshot(st)
	switch {
	case errors.Is(err, storage.ErrSlotNotFound):
		s.restore(SeedSnapshot())
		if perr := s.persistLocked(); perr != nil {
			s.logger.Warn("could not persist seed data", "error", perr)
		}
		s.logger.Info("no snapshot found, seeded default data set",
			"clients", len(s.clients))
	case err != nil:
		s.logger.Warn("snapshot load failed, starting with an empty in-memory ledger",
			"error", &domain.PersistenceError{Op: "load", Err: err})
	default:
		s.restore(snap)
		s.logger.Info("snapshot loaded",
			"clients", len(snap.Clients), "transactions", len(snap.Transactions))
	}
	return s
}

// restore installs a snapshot, grouping transactions into per-client
// partitions. Balances are restamped so the running-balance invariant holds
// no matter what the snapshot contained. Transactions referencing an
// unknown client are dropped; a transaction never outlives its client.
func (s *Store) restore(snap *storage.Snapshot) {
	for i := range snap.Clients {
		c := snap.Clients[i]
		s.clients = append(s.clients, &c)
		s.clientByID[c.ID] = &c
	}
	for i := range snap.Transactions {
		tx := snap.Transactions[i]
		if _, ok := s.clientByID[tx.ClientID]; !ok {
			s.logger.Warn("dropping orphaned transaction from snapshot",
				"transaction_id", tx.ID, "client_id", tx.ClientID)
			continue
		}
		s.partitions[tx.ClientID] = append(s.partitions[tx.ClientID], &tx)
		s.txClient[tx.ID] = tx.ClientID
	}
	for clientID, part := range s.partitions {
		s.partitions[clientID] = Recalculate(part)
	}
}

// AddClient validates the input, assigns a fresh id, appends the client and
// persists. The returned client is the created record.
func (s *Store) AddClient(input domain.CreateClientInput) (*domain.Client, error) {
	client, err := domain.ValidateClient(input)
	if err != nil {
		return nil, err
	}
	client.ID = uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, client)
	s.clientByID[client.ID] = client
	s.logger.Info("client added", "client_id", client.ID, "company", client.CompanyName)

	out := *client
	return &out, s.persistLocked()
}

// UpdateClient merges a partial edit onto the stored client, re-validates
// the merged record and persists.
func (s *Store) UpdateClient(id uuid.UUID, updates domain.UpdateClientInput) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.clientByID[id]
	if !ok {
		return nil, fmt.Errorf("update client %s: %w", id, domain.ErrClientNotFound)
	}
	validated, err := domain.ValidateClient(mergeClient(*current, updates))
	if err != nil {
		return nil, err
	}
	validated.ID = id
	*current = *validated

	out := *current
	return &out, s.persistLocked()
}

// RemoveClient deletes a client and cascade-deletes its whole partition.
// No recalculation runs; the partition is gone.
func (s *Store) RemoveClient(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clientByID[id]; !ok {
		return fmt.Errorf("remove client %s: %w", id, domain.ErrClientNotFound)
	}
	removed := len(s.partitions[id])
	for _, tx := range s.partitions[id] {
		delete(s.txClient, tx.ID)
	}
	delete(s.partitions, id)
	delete(s.clientByID, id)
	s.clients = slices.DeleteFunc(s.clients, func(c *domain.Client) bool { return c.ID == id })
	s.logger.Info("client removed", "client_id", id, "transactions_removed", removed)

	return s.persistLocked()
}

// AddTransaction validates the input, inserts the transaction into its
// client's partition, recalculates that partition and persists. The
// returned transaction carries its final running balance.
func (s *Store) AddTransaction(input domain.CreateTransactionInput) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clientByID[input.ClientID]; !ok {
		return nil, fmt.Errorf("add transaction for client %s: %w", input.ClientID, domain.ErrClientNotFound)
	}
	tx, err := domain.ValidateTransaction(input)
	if err != nil {
		return nil, err
	}
	tx.ID = uuid.New()

	s.partitions[tx.ClientID] = Recalculate(append(s.partitions[tx.ClientID], tx))
	s.txClient[tx.ID] = tx.ClientID
	s.logger.Info("transaction added",
		"transaction_id", tx.ID, "client_id", tx.ClientID,
		"kind", tx.Kind, "amount", tx.Amount)

	out := *s.findLocked(tx.ClientID, tx.ID)
	return &out, s.persistLocked()
}

// UpdateTransaction merges a partial edit onto the stored transaction,
// re-validates the merged record, recalculates the owning client's
// partition and persists. Recalculation runs even when no money field
// changed; a stale balance is worse than a cheap re-sort.
func (s *Store) UpdateTransaction(id uuid.UUID, updates domain.UpdateTransactionInput) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clientID, ok := s.txClient[id]
	if !ok {
		return nil, fmt.Errorf("update transaction %s: %w", id, domain.ErrTransactionNotFound)
	}
	current := s.findLocked(clientID, id)
	validated, err := domain.ValidateTransaction(mergeTransaction(*current, updates))
	if err != nil {
		return nil, err
	}
	validated.ID = id

	part := s.partitions[clientID]
	for i, tx := range part {
		if tx.ID == id {
			part[i] = validated
			break
		}
	}
	s.partitions[clientID] = Recalculate(part)
	s.logger.Info("transaction updated", "transaction_id", id, "client_id", clientID)

	out := *s.findLocked(clientID, id)
	return &out, s.persistLocked()
}

// DeleteTransaction removes a transaction, recalculates the owning client's
// partition and persists. An unknown id is an error, not a no-op: every
// other operation reports unknown ids, and silence would hide caller bugs.
func (s *Store) DeleteTransaction(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clientID, ok := s.txClient[id]
	if !ok {
		return fmt.Errorf("delete transaction %s: %w", id, domain.ErrTransactionNotFound)
	}
	delete(s.txClient, id)
	part := slices.DeleteFunc(s.partitions[clientID], func(tx *domain.Transaction) bool { return tx.ID == id })
	s.partitions[clientID] = Recalculate(part)
	s.logger.Info("transaction deleted", "transaction_id", id, "client_id", clientID)

	return s.persistLocked()
}

// FindClientByID returns the client with the given id, if present.
func (s *Store) FindClientByID(id uuid.UUID) (*domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clientByID[id]
	if !ok {
		return nil, false
	}
	out := *c
	return &out, true
}

// ListClients returns all clients in insertion order.
func (s *Store) ListClients() []*domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		cc := *c
		out = append(out, &cc)
	}
	return out
}

// ListTransactions returns one client's transactions in chronological
// post-recalculation order. An unknown or deleted client id yields an empty
// sequence, not an error.
func (s *Store) ListTransactions(clientID uuid.UUID) []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	part := s.partitions[clientID]
	out := make([]*domain.Transaction, 0, len(part))
	for _, tx := range part {
		cc := *tx
		out = append(out, &cc)
	}
	return out
}

// findLocked scans a partition for a transaction id. Callers hold s.mu.
func (s *Store) findLocked(clientID, txID uuid.UUID) *domain.Transaction {
	for _, tx := range s.partitions[clientID] {
		if tx.ID == txID {
			return tx
		}
	}
	return nil
}

// persistLocked saves the whole store as one snapshot. Callers hold the
// write lock. A failed save keeps the in-memory mutation and surfaces a
// PersistenceError for the caller to act on; the engine never retries.
func (s *Store) persistLocked() error {
	snap := &storage.Snapshot{
		Clients:      make([]domain.Client, 0, len(s.clients)),
		Transactions: make([]domain.Transaction, 0, len(s.txClient)),
	}
	for _, c := range s.clients {
		snap.Clients = append(snap.Clients, *c)
	}
	for _, c := range s.clients {
		for _, tx := range s.partitions[c.ID] {
			snap.Transactions = append(snap.Transactions, *tx)
		}
	}
	if err := storage.SaveSnapshot(s.storage, snap); err != nil {
		perr := &domain.PersistenceError{Op: "save", Err: err}
		s.logger.Warn("snapshot save failed, in-memory state kept", "error", perr)
		return perr
	}
	return nil
}

func mergeClient(current domain.Client, updates domain.UpdateClientInput) domain.CreateClientInput {
	merged := domain.CreateClientInput{
		CompanyName:  current.CompanyName,
		Sector:       current.Sector,
		Address:      current.Address,
		City:         current.City,
		PostalCode:   current.PostalCode,
		Country:      current.Country,
		ContactName:  current.ContactName,
		ContactEmail: current.ContactEmail,
		ContactPhone: current.ContactPhone,
		TaxID:        current.TaxID,
	}
	if updates.CompanyName != nil {
		merged.CompanyName = *updates.CompanyName
	}
	if updates.Sector != nil {
		merged.Sector = *updates.Sector
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.City != nil {
		merged.City = *updates.City
	}
	if updates.PostalCode != nil {
		merged.PostalCode = *updates.PostalCode
	}
	if updates.Country != nil {
		merged.Country = *updates.Country
	}
	if updates.ContactName != nil {
		merged.ContactName = *updates.ContactName
	}
	if updates.ContactEmail != nil {
		merged.ContactEmail = *updates.ContactEmail
	}
	if updates.ContactPhone != nil {
		merged.ContactPhone = *updates.ContactPhone
	}
	if updates.TaxID != nil {
		merged.TaxID = *updates.TaxID
	}
	return merged
}

func mergeTransaction(current domain.Transaction, updates domain.UpdateTransactionInput) domain.CreateTransactionInput {
	merged := domain.CreateTransactionInput{
		ClientID:    current.ClientID,
		Date:        current.Date.String(),
		Kind:        current.Kind,
		Amount:      current.Amount,
		Description: current.Description,
		Category:    current.Category,
		Reference:   current.Reference,
	}
	if updates.Date != nil {
		merged.Date = *updates.Date
	}
	if updates.Kind != nil {
		merged.Kind = *updates.Kind
	}
	if updates.Amount != nil {
		merged.Amount = *updates.Amount
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Category != nil {
		merged.Category = *updates.Category
	}
	if updates.Reference != nil {
		merged.Reference = *updates.Reference
	}
	return merged
}
