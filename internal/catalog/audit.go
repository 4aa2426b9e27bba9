// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cicerone/internal/audit"
)

// auditRetention is how long audit events are kept. Expiry rides on
// Badger entry TTLs, so there is no separate cleanup pass.
const auditRetention = 90 * 24 * time.Hour

// AuditLog is the BadgerDB-backed audit event store. Events are keyed
// by zero-padded nanosecond timestamp so a reverse scan yields them
// newest first.
type AuditLog struct {
	s *Store
}

// AuditLog returns the audit event store sharing this catalog's
// database.
func (s *Store) AuditLog() *AuditLog {
	return &AuditLog{s: s}
}

// auditKey builds the sortable event key.
func auditKey(ts time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", prefixAudit, ts.UnixNano(), id))
}

// Save persists one audit event with the retention TTL.
func (a *AuditLog) Save(ctx context.Context, event *audit.Event) (err error) {
	defer a.s.observe("save", prefixAudit, time.Now(), &err)
	if err = a.s.checkOpen(); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	return a.s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(auditKey(event.Timestamp, event.ID), data).
			WithTTL(auditRetention)
		return txn.SetEntry(entry)
	})
}

// Recent returns up to limit events, newest first.
func (a *AuditLog) Recent(ctx context.Context, limit int) (events []audit.Event, err error) {
	defer a.s.observe("list", prefixAudit, time.Now(), &err)
	if err = a.s.checkOpen(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	prefix := []byte(prefixAudit)
	err = a.s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek past the last possible key
		// under the prefix.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(events) < limit; it.Next() {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			var event audit.Event
			valErr := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if valErr != nil {
				return fmt.Errorf("read audit event: %w", valErr)
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
