package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/bloggery/internal/password"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

type UserMemoryStorage struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byId    map[uint]*models.User
	nextId  uint // Для хранения актуального ID (можно было использовать UUID)
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		byEmail: make(map[string]*models.User),
		byId:    make(map[uint]*models.User),
		nextId:  1,
	}
}

func (s *UserMemoryStorage) Register(name, email, plaintext string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.byEmail[email]
	if exists {
		return nil, fmt.Errorf("%w: %s", user.ErrDuplicateEmail, email)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	// первый зарегистрированный в пустом хранилище становится администратором
	role := models.RoleMember
	if !s.hasAdminLocked() {
		role = models.RoleAdmin
	}

	u := &models.User{
		Model:        gorm.Model{ID: s.nextId, CreatedAt: time.Now()},
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	s.nextId++

	s.byEmail[email] = u
	s.byId[u.ID] = u

	return u, nil
}

func (s *UserMemoryStorage) hasAdminLocked() bool {
	for _, u := range s.byId {
		if u.IsAdmin() {
			return true
		}
	}
	return false
}

func (s *UserMemoryStorage) Authenticate(email, plaintext string) (uint, error) {
	s.mu.Lock()
	u, exists := s.byEmail[email]
	s.mu.Unlock()

	if !exists {
		return 0, fmt.Errorf("%w: %s", user.ErrUnknownEmail, email)
	}

	// bcrypt сравнивает за пределами мьютекса - это медленная операция
	ok, err := password.Verify(plaintext, u.PasswordHash)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, user.ErrWrongPassword
	}

	return u.ID, nil
}

func (s *UserMemoryStorage) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.byEmail[email]
	if !exists {
		return nil, fmt.Errorf("%w: %s", user.ErrUnknownEmail, email)
	}

	return u, nil
}

func (s *UserMemoryStorage) FindById(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.byId[id]
	if !exists {
		return nil, fmt.Errorf("%w: id %d", user.ErrUnknownUser, id)
	}

	return u, nil
}
