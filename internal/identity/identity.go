package identity

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/daymood/internal/keyring"
	"github.com/julianstephens/daymood/internal/logger"
)

// EnvUser overrides the keyring when set.
const EnvUser = "DAYMOOD_USER"

// ErrSignedOut is returned when no user identity can be resolved.
var ErrSignedOut = errors.New("not signed in")

// Status is the identity lifecycle as seen by the app.
type Status int

const (
	StatusNotLoaded Status = iota
	StatusSignedOut
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusSignedOut:
		return "signed out"
	case StatusSignedIn:
		return "signed in"
	default:
		return "not loaded"
	}
}

// Source names where an identity came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// Identity is the resolved user.
type Identity struct {
	Status Status
	UserID string
	Source Source
}

// Store persists the signed-in user id.
type Store interface {
	GetUserID() (string, error)
	SetUserID(id string) error
	DeleteUserID() error
}

// KeyringStore keeps the user id in the OS keyring.
type KeyringStore struct{}

func (KeyringStore) GetUserID() (string, error) { return keyring.GetUserID() }
func (KeyringStore) SetUserID(id string) error  { return keyring.SetUserID(id) }
func (KeyringStore) DeleteUserID() error        { return keyring.DeleteUserID() }

// Resolver finds the current user: an explicit override first, then the
// DAYMOOD_USER environment variable, then the store.
type Resolver struct {
	Override string
	Store    Store
	Getenv   func(string) string
}

func NewResolver(override string) *Resolver {
	return &Resolver{
		Override: override,
		Store:    KeyringStore{},
		Getenv:   os.Getenv,
	}
}

// Resolve never fails because the user is signed out; that is reported
// through Status. Errors mean the store could not be read.
func (r *Resolver) Resolve() (Identity, error) {
	if id := strings.TrimSpace(r.Override); id != "" {
		return Identity{Status: StatusSignedIn, UserID: id, Source: SourceFlag}, nil
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if id := strings.TrimSpace(getenv(EnvUser)); id != "" {
		return Identity{Status: StatusSignedIn, UserID: id, Source: SourceEnv}, nil
	}

	if r.Store == nil {
		return Identity{Status: StatusSignedOut}, nil
	}
	id, err := r.Store.GetUserID()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Identity{Status: StatusSignedOut}, nil
		}
		return Identity{Status: StatusNotLoaded}, fmt.Errorf("failed to read signed-in user: %w", err)
	}
	return Identity{Status: StatusSignedIn, UserID: id, Source: SourceKeyring}, nil
}

// Require resolves the user and fails with ErrSignedOut when there is none.
func (r *Resolver) Require() (Identity, error) {
	id, err := r.Resolve()
	if err != nil {
		return id, err
	}
	if id.Status != StatusSignedIn {
		return id, ErrSignedOut
	}
	return id, nil
}

// SignIn records id as the signed-in user.
func SignIn(store Store, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("user id cannot be empty")
	}
	if strings.ContainsAny(id, " \t\n") {
		return fmt.Errorf("user id %q must not contain whitespace", id)
	}
	if err := store.SetUserID(id); err != nil {
		return err
	}
	logger.Info("Signed in", "user", id)
	return nil
}

// SignOut forgets the signed-in user. Signing out twice is not an error.
func SignOut(store Store) error {
	if err := store.DeleteUserID(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	logger.Info("Signed out")
	return nil
}
