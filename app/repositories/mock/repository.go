package mock

import (
	"sort"
	"sync"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
)

// In-memory implementations of the repository interfaces for tests.

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) ListByAuthor(authorID int) ([]*models.Post, error) {
	all, err := m.List()
	if err != nil {
		return nil, err
	}
	var posts []*models.Post
	for _, post := range all {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *CommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *CommentRepository) CountByPost(postID int) (int, error) {
	comments, err := m.ListByPost(postID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *CommentRepository) DeleteByPost(postID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

type UserRepository struct {
	users  map[int]*models.User
	byName map[string]int
	nextID int
	mutex  sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		byName: make(map[string]int),
		nextID: 1,
	}
}

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.byName[user.Username]; exists {
		return repositories.ErrUsernameTaken
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	m.byName[user.Username] = user.ID
	return nil
}

func (m *UserRepository) GetByID(id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *UserRepository) GetByUsername(username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	id, exists := m.byName[username]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *m.users[id]
	return &copied, nil
}

func (m *UserRepository) Update(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.users[user.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	if existing.Username != user.Username {
		if _, taken := m.byName[user.Username]; taken {
			return repositories.ErrUsernameTaken
		}
		delete(m.byName, existing.Username)
		m.byName[user.Username] = user.ID
	}
	m.users[user.ID] = user
	return nil
}

type CategoryRepository struct {
	categories map[int]*models.Category
	bySlug     map[string]int
	nextID     int
	mutex      sync.RWMutex
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		categories: make(map[int]*models.Category),
		bySlug:     make(map[string]int),
		nextID:     1,
	}
}

func (m *CategoryRepository) Create(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.bySlug[category.Slug]; exists {
		return repositories.ErrSlugTaken
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	m.bySlug[category.Slug] = category.ID
	return nil
}

func (m *CategoryRepository) GetByID(id int) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *CategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	id, exists := m.bySlug[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *m.categories[id]
	return &copied, nil
}

func (m *CategoryRepository) List() ([]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var categories []*models.Category
	for _, category := range m.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

type LocationRepository struct {
	locations map[int]*models.Location
	nextID    int
	mutex     sync.RWMutex
}

func NewLocationRepository() *LocationRepository {
	return &LocationRepository{
		locations: make(map[int]*models.Location),
		nextID:    1,
	}
}

func (m *LocationRepository) Create(location *models.Location) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	location.ID = m.nextID
	m.nextID++
	m.locations[location.ID] = location
	return nil
}

func (m *LocationRepository) GetByID(id int) (*models.Location, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	location, exists := m.locations[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *location
	return &copied, nil
}

func (m *LocationRepository) List() ([]*models.Location, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var locations []*models.Location
	for _, location := range m.locations {
		copied := *location
		locations = append(locations, &copied)
	}
	sort.Slice(locations, func(i, j int) bool {
		return locations[i].ID < locations[j].ID
	})
	return locations, nil
}

type SessionRepository struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*models.Session),
	}
}

func (m *SessionRepository) Create(session *models.Session, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	session.ExpiresAt = time.Now().Add(ttl)
	copied := *session
	m.sessions[session.Token] = &copied
	return nil
}

func (m *SessionRepository) Get(token string) (*models.Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	session, exists := m.sessions[token]
	if !exists || session.ExpiresAt.Before(time.Now()) {
		return nil, repositories.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *SessionRepository) Delete(token string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, token)
	return nil
}
