package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"captiveportal/models"
	"captiveportal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthRepository checks the single demo credential and keeps the active
// session in the store
type AuthRepository struct {
	mu           sync.Mutex
	col          *Collection[models.Session]
	email        string
	passwordHash []byte
	user         models.User
}

func NewAuthRepository(s store.Store, email, password string, logger *logrus.Entry) (*AuthRepository, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := models.DemoUser
	user.Email = email

	return &AuthRepository{
		col:          NewCollection[models.Session](s, store.Auth, logger),
		email:        strings.ToLower(email),
		passwordHash: hash,
		user:         user,
	}, nil
}

// Login starts a new session, replacing any previous one
func (r *AuthRepository) Login(ctx context.Context, email, password string) (models.Session, error) {
	if strings.ToLower(strings.TrimSpace(email)) != r.email {
		return models.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(r.passwordHash, []byte(password)); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	user := r.user
	session := models.Session{
		User:         &user,
		SessionID:    uuid.NewString(),
		IsAuthorized: true,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.col.Save(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// Current returns the stored session, unauthenticated when there is none
func (r *AuthRepository) Current(ctx context.Context) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, _, err := r.col.Load(ctx)
	return session, err
}

// Active reports whether sessionID is the current session
func (r *AuthRepository) Active(ctx context.Context, sessionID string) (bool, error) {
	session, err := r.Current(ctx)
	if err != nil {
		return false, err
	}
	return session.IsAuthorized && session.SessionID != "" && session.SessionID == sessionID, nil
}

func (r *AuthRepository) Logout(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Clear(ctx)
}
