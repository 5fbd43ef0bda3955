package repository

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
)

// UserRepository users.json 기반 사용자 저장소
type UserRepository struct {
	mu   sync.Mutex
	path string
}

func NewUserRepository(dataDir string) *UserRepository {
	return &UserRepository{
		path: filepath.Join(dataDir, "users.json"),
	}
}

func (r *UserRepository) loadAll() ([]models.User, error) {
	users := []models.User{}
	if err := readJSONFile(r.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) findBy(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if match(&users[i]) {
			u := users[i]
			return &u, nil
		}
	}

	return nil, nil
}

// FindByID ID로 사용자 찾기 (없으면 nil)
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.ID == id })
}

// FindByEmail 이메일로 사용자 찾기 (없으면 nil)
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Email == email })
}

// FindByUsername 사용자명으로 찾기 (없으면 nil)
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	return r.findBy(func(u *models.User) bool { return u.Username == username })
}

// Create 새 사용자 생성
func (r *UserRepository) Create(username, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadAll()
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	users = append(users, user)

	if err := writeJSONFile(r.path, users); err != nil {
		return nil, fmt.Errorf("failed to save users: %w", err)
	}

	return &user, nil
}
