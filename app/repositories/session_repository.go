package repositories

import (
	"time"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB.
// Entries are written with a Badger TTL so expired sessions vanish on
// their own; the expiry is also checked on read in case the entry has
// not been reclaimed yet.
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Create stores a session with the given time to live
func (r *BadgerSessionRepository) Create(session *models.Session, ttl time.Duration) error {
	session.ExpiresAt = time.Now().Add(ttl)
	return r.db.Update(func(txn *badger.Txn) error {
		data, err := marshalEntity(session)
		if err != nil {
			return err
		}
		entry := badger.NewEntry([]byte(SessionKeyPrefix+session.Token), data).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// Get retrieves a live session by token
func (r *BadgerSessionRepository) Get(token string) (*models.Session, error) {
	var session models.Session

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SessionKeyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &session)
		})
	})
	if err != nil {
		return nil, err
	}

	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
		return nil, ErrNotFound
	}
	return &session, nil
}

// Delete removes a session, ending the login
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SessionKeyPrefix + token))
	})
}
