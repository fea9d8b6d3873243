package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/newsnotes/internal/models"
	"github.com/newsnotes/internal/ordering"
	"github.com/newsnotes/internal/repository"
)

// Verify interface compliance
var (
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.ArticleRepository = (*MockArticleRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
	_ repository.NoteRepository    = (*MockNoteRepository)(nil)
)

// NewRepositories returns in-memory repositories wired together
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:    NewMockUserRepository(),
		Article: NewMockArticleRepository(),
		Comment: NewMockCommentRepository(),
		Note:    NewMockNoteRepository(),
	}
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu          sync.RWMutex
	Users       map[string]*models.User
	InsertError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	for _, u := range m.Users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.Users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.Users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Users), nil
}

// MockArticleRepository is an in-memory ArticleRepository keeping insertion order
type MockArticleRepository struct {
	mu               sync.RWMutex
	Articles         []*models.Article
	InsertError      error
	BatchInsertFunc  func(ctx context.Context, articles []*models.Article) (int, error)
	BatchInsertCalls int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *article
	m.Articles = append(m.Articles, &stored)
	return nil
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	m.mu.Lock()
	m.BatchInsertCalls++
	fn := m.BatchInsertFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, articles)
	}

	for _, a := range articles {
		if err := m.Create(ctx, a); err != nil {
			return 0, err
		}
	}
	return len(articles), nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.Articles {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, nil
}

// ListRecent returns up to limit articles, newest publish date first
func (m *MockArticleRepository) ListRecent(ctx context.Context, limit int) ([]*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		c := *a
		all = append(all, &c)
	}
	return ordering.Articles(all, limit), nil
}

func (m *MockArticleRepository) GetAllIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.Articles))
	for _, a := range m.Articles {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Articles), nil
}

// StreamAll streams every article, newest publish date first
func (m *MockArticleRepository) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	m.mu.RLock()
	snapshot := make([]*models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		c := *a
		snapshot = append(snapshot, &c)
	}
	m.mu.RUnlock()

	for _, a := range ordering.Articles(snapshot, -1) {
		if err := callback(a); err != nil {
			return err
		}
	}
	return nil
}

// MockCommentRepository is an in-memory CommentRepository keeping insertion order
type MockCommentRepository struct {
	mu          sync.RWMutex
	Comments    []*models.Comment
	InsertError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *comment
	m.Comments = append(m.Comments, &stored)
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.index(id); i >= 0 {
		out := *m.Comments[i]
		return &out, nil
	}
	return nil, nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockCommentRepository) UpdateText(ctx context.Context, id, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		m.Comments[i].Text = text
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		m.Comments = append(m.Comments[:i], m.Comments[i+1:]...)
	}
	return nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Comments), nil
}

func (m *MockCommentRepository) index(id string) int {
	for i, c := range m.Comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// MockNoteRepository is an in-memory NoteRepository enforcing slug uniqueness
type MockNoteRepository struct {
	mu          sync.RWMutex
	Notes       []*models.Note
	InsertError error
}

func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{}
}

func (m *MockNoteRepository) Create(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	if m.slugTaken(note.Slug, "") {
		return repository.ErrDuplicateSlug
	}
	stored := *note
	m.Notes = append(m.Notes, &stored)
	return nil
}

func (m *MockNoteRepository) GetBySlug(ctx context.Context, slug string) (*models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.Notes {
		if n.Slug == slug {
			out := *n
			return &out, nil
		}
	}
	return nil, nil
}

func (m *MockNoteRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Note
	for _, n := range m.Notes {
		if n.AuthorID == authorID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockNoteRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slugTaken(slug, excludeID), nil
}

func (m *MockNoteRepository) Update(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slugTaken(note.Slug, note.ID) {
		return repository.ErrDuplicateSlug
	}
	note.UpdatedAt = time.Now()
	for _, n := range m.Notes {
		if n.ID == note.ID {
			n.Title, n.Text, n.Slug = note.Title, note.Text, note.Slug
			n.UpdatedAt = note.UpdatedAt
		}
	}
	return nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.Notes {
		if n.ID == id {
			m.Notes = append(m.Notes[:i], m.Notes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockNoteRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Notes), nil
}

func (m *MockNoteRepository) slugTaken(slug, excludeID string) bool {
	for _, n := range m.Notes {
		if n.Slug == slug && n.ID != excludeID {
			return true
		}
	}
	return false
}
