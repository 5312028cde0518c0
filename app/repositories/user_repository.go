package repositories

import (
	"fmt"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB. A
// secondary "username:" index enforces username uniqueness and serves
// profile lookups.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user, failing with ErrUsernameTaken if the
// username is already registered
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		indexKey := []byte(UsernameIndexPrefix + user.Username)
		_, err := txn.Get(indexKey)
		if err == nil {
			return ErrUsernameTaken
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(indexKey, encodeID(user.ID))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(UsernameIndexPrefix + username))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		if err := item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		}); err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, id))
		item, err = txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user, moving the username index entry if
// the username changed
func (r *BadgerUserRepository) Update(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", UserKeyPrefix, user.ID))

		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.User
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}

		if existing.Username != user.Username {
			newIndexKey := []byte(UsernameIndexPrefix + user.Username)
			if _, err := txn.Get(newIndexKey); err == nil {
				return ErrUsernameTaken
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			if err := txn.Delete([]byte(UsernameIndexPrefix + existing.Username)); err != nil {
				return err
			}
			if err := txn.Set(newIndexKey, encodeID(user.ID)); err != nil {
				return err
			}
		}

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}
