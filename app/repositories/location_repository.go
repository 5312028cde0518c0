package repositories

import (
	"fmt"
	"sort"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerLocationRepository implements LocationRepository using BadgerDB
type BadgerLocationRepository struct {
	db *badger.DB
}

// NewBadgerLocationRepository creates a new BadgerLocationRepository
func NewBadgerLocationRepository(db *badger.DB) *BadgerLocationRepository {
	return &BadgerLocationRepository{db: db}
}

// Create creates a new location
func (r *BadgerLocationRepository) Create(location *models.Location) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, LocationSeqKey)
		if err != nil {
			return err
		}
		location.ID = id

		data, err := marshalEntity(location)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", LocationKeyPrefix, location.ID))
		return txn.Set(key, data)
	})
}

// GetByID retrieves a location by ID
func (r *BadgerLocationRepository) GetByID(id int) (*models.Location, error) {
	var location models.Location

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", LocationKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &location)
		})
	})

	if err != nil {
		return nil, err
	}
	return &location, nil
}

// List retrieves all locations ordered by ID
func (r *BadgerLocationRepository) List() ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(LocationKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var location models.Location
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &location)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal location: %v", err)
			}
			locations = append(locations, &location)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].ID < locations[j].ID
	})
	return locations, nil
}
