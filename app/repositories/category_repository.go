package repositories

import (
	"fmt"
	"sort"

	"blogicum/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCategoryRepository implements CategoryRepository using
// BadgerDB, with a "slug:" index for feed URL lookups.
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

// Create creates a new category, failing with ErrSlugTaken if the slug
// is already in use
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		indexKey := []byte(SlugIndexPrefix + category.Slug)
		_, err := txn.Get(indexKey)
		if err == nil {
			return ErrSlugTaken
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, CategorySeqKey)
		if err != nil {
			return err
		}
		category.ID = id

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}

		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, category.ID))
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(indexKey, encodeID(category.ID))
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category models.Category

	err := r.db.View(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%d", CategoryKeyPrefix, id))
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &category)
		})
	})

	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category through the slug index
func (r *BadgerCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var id int

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SlugIndexPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = decodeID(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// List retrieves all categories ordered by ID
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var category models.Category
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal category: %v", err)
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}
