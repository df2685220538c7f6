// Package store mediates all reads and writes of trade entries
// against the hosted Firestore database. It owns the client
// lifecycle (initialized at most once per process) and normalizes
// timestamp representations at the boundary; faults are absorbed
// into typed errors rather than propagated raw.
package store

import (
	"context"
	"errors"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

// Store wraps a lazily-initialized Firestore client. The zero client
// state is valid: every operation fails fast with ErrNotInitialized
// until Init succeeds.
type Store struct {
	databaseID string
	collection string
	providers  []CredentialsProvider

	initOnce sync.Once
	initErr  error
	client   *firestore.Client
}

// New builds a Store that will acquire its client from the given
// credential providers, tried in order, on the first call to Init.
func New(databaseID, collection string, providers ...CredentialsProvider) *Store {
	return &Store{
		databaseID: databaseID,
		collection: collection,
		providers:  providers,
	}
}

// NewWithClient wraps an already-open client, bypassing the
// credential chain. Used against the Firestore emulator in tests.
func NewWithClient(client *firestore.Client, collection string) *Store {
	s := &Store{collection: collection, client: client}
	s.initOnce.Do(func() {})
	return s
}

// Init acquires the Firestore client, trying each credential
// provider in order. It runs at most once per Store; later calls
// return the recorded outcome. A failed Init leaves the client
// absent and every operation short-circuiting.
func (s *Store) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		var attempts []error
		for _, p := range s.providers {
			client, err := p.NewClient(ctx, s.databaseID)
			if err != nil {
				log.Warn().Err(err).Str("provider", p.Name()).
					Msg("firestore client init attempt failed")
				attempts = append(attempts, err)
				continue
			}
			log.Info().Str("provider", p.Name()).Str("database", s.databaseID).
				Msg("firestore client initialized")
			s.client = client
			return
		}
		s.initErr = errors.Join(append([]error{ErrNotInitialized}, attempts...)...)
		log.Error().Err(s.initErr).Msg("firestore client not initialized")
	})
	return s.initErr
}

// Ready reports whether the store holds a usable client.
func (s *Store) Ready() bool {
	return s.client != nil
}

// Close releases the underlying client, if any.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
