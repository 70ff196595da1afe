package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/scheme-sarthi/sarthi/internal/dbx"
	"github.com/scheme-sarthi/sarthi/internal/idgen"
	"github.com/scheme-sarthi/sarthi/internal/logging"
	"github.com/scheme-sarthi/sarthi/internal/models"
	"github.com/scheme-sarthi/sarthi/internal/repositories/slots"
)

// IdentityState is the session snapshot persisted into the auth slot.
// The registered-user ledger lives in its own slot and is not part of it.
type IdentityState struct {
	CurrentUser     *models.User `json:"currentUser"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	Language        string       `json:"language"`
}

// IdentityStore owns the current session and performs credential checks
// against the union of the built-in seed accounts and the registered-user
// ledger. There is no lockout or attempt counting: any number of login
// calls is permitted.
type IdentityStore struct {
	db  *sql.DB
	ids idgen.Generator
	log logging.Logger

	mu    sync.Mutex
	state IdentityState
	seed  []models.User

	defaultLang string
}

// NewIdentityStore builds the store and restores the previous session from
// the auth slot. A missing or corrupt slot degrades to a logged-out session
// with defaultLang as the language ("" means "en").
func NewIdentityStore(ctx context.Context, db *sql.DB, ids idgen.Generator, log logging.Logger, defaultLang string) *IdentityStore {
	if log == nil {
		log = logging.NopLogger{}
	}
	if ids == nil {
		ids = idgen.NewPrefixed("USR")
	}
	if defaultLang == "" {
		defaultLang = "en"
	}

	s := &IdentityStore{db: db, ids: ids, log: log, seed: seedUsers(), defaultLang: defaultLang}

	state, _ := loadSlot[IdentityState](ctx, s.slotRepo(), SlotAuth, log)
	if state.Language == "" {
		state.Language = defaultLang
	}
	s.state = state
	return s
}

func (s *IdentityStore) slotRepo() slots.Repository {
	return slots.NewSQLiteRepository(s.db)
}

// registeredUsers reads the ledger slot. A missing or corrupt ledger is an
// empty one.
func (s *IdentityStore) registeredUsers(ctx context.Context) []models.User {
	users, _ := loadSlot[[]models.User](ctx, s.slotRepo(), SlotUsers, s.log)
	return users
}

// findUser scans seed accounts first, then the ledger, returning the first
// match. Seed-first matches the portal's historical lookup order.
func (s *IdentityStore) findUser(ctx context.Context, match func(models.User) bool) (models.User, bool) {
	for _, u := range s.seed {
		if match(u) {
			return u, true
		}
	}
	for _, u := range s.registeredUsers(ctx) {
		if match(u) {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *IdentityStore) mobileTaken(ctx context.Context, mobile, exceptID string) bool {
	_, taken := s.findUser(ctx, func(u models.User) bool {
		return u.Mobile == mobile && u.ID != exceptID
	})
	return taken
}

// persistSession writes the auth slot. Failures stay on the observability
// channel: the in-memory session remains usable for this run.
func (s *IdentityStore) persistSession(ctx context.Context) {
	if err := saveSlot(ctx, s.slotRepo(), SlotAuth, s.state); err != nil {
		s.log.Error(ctx, "failed to persist session", "slot", SlotAuth, "err", err)
	}
}

// Login checks mobile and mPIN by exact value against seed and registered
// users. On a match the session adopts the user and their language
// preference. On no match the state is unchanged.
func (s *IdentityStore) Login(ctx context.Context, mobile, mpin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(ctx, func(u models.User) bool {
		return u.Mobile == mobile && u.MPIN == mpin
	})
	if !ok {
		return false
	}

	s.state = IdentityState{CurrentUser: &u, IsAuthenticated: true, Language: u.Language}
	s.persistSession(ctx)
	return true
}

// LoginWithOTP matches on mobile alone. The OTP itself is not modeled:
// a known mobile number succeeds unconditionally. This is a deliberate
// demo-mode simplification, not an oversight.
func (s *IdentityStore) LoginWithOTP(ctx context.Context, mobile string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUser(ctx, func(u models.User) bool {
		return u.Mobile == mobile
	})
	if !ok {
		return false
	}

	s.state = IdentityState{CurrentUser: &u, IsAuthenticated: true, Language: u.Language}
	s.persistSession(ctx)
	return true
}

// Register appends a new user to the ledger and treats the registration as
// an implicit login. Returns (false, nil) when the mobile number is already
// taken; returns a validation error for malformed input without mutating
// anything.
func (s *IdentityStore) Register(ctx context.Context, userData models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userData.Mobile == "" {
		return false, fmt.Errorf("%w: mobile number is required", ErrValidation)
	}

	lang := userData.Language
	if lang == "" {
		lang = "en"
	}
	lang, err := models.NormalizeLanguage(lang)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if s.mobileTaken(ctx, userData.Mobile, "") {
		return false, nil
	}

	newUser := userData
	newUser.ID = s.ids.NewID()
	newUser.Language = lang

	ledger := append(s.registeredUsers(ctx), newUser)
	newState := IdentityState{CurrentUser: &newUser, IsAuthenticated: true, Language: newUser.Language}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := slots.NewSQLiteRepository(tx)
		if err := saveSlot(ctx, repo, SlotUsers, ledger); err != nil {
			return err
		}
		return saveSlot(ctx, repo, SlotAuth, newState)
	})
	if err != nil {
		return false, fmt.Errorf("failed to persist registration: %w", err)
	}

	s.state = newState
	return true, nil
}

// SetLanguage updates the session language. When a user is logged in the
// preference is also written through to their ledger entry, so it survives
// the next login. Seed accounts have no ledger entry; for them the change
// is session-only.
func (s *IdentityStore) SetLanguage(ctx context.Context, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lang, err := models.NormalizeLanguage(lang)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	newState := s.state
	newState.Language = lang

	if !s.state.IsAuthenticated || s.state.CurrentUser == nil {
		if err := saveSlot(ctx, s.slotRepo(), SlotAuth, newState); err != nil {
			return fmt.Errorf("failed to persist language: %w", err)
		}
		s.state = newState
		return nil
	}

	user := *s.state.CurrentUser
	user.Language = lang
	newState.CurrentUser = &user

	ledger := s.replaceLedgerEntry(ctx, user)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := slots.NewSQLiteRepository(tx)
		if err := saveSlot(ctx, repo, SlotUsers, ledger); err != nil {
			return err
		}
		return saveSlot(ctx, repo, SlotAuth, newState)
	})
	if err != nil {
		return fmt.Errorf("failed to persist language: %w", err)
	}

	s.state = newState
	return nil
}

// UpdateProfile merges patch into the current user and rewrites the matching
// ledger entry by id. A no-op when nobody is logged in. Rejects a mobile
// change that would collide with another account.
func (s *IdentityStore) UpdateProfile(ctx context.Context, patch models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAuthenticated || s.state.CurrentUser == nil {
		return nil
	}

	current := *s.state.CurrentUser
	merged := current.Merge(patch)

	if merged.Mobile != current.Mobile && s.mobileTaken(ctx, merged.Mobile, merged.ID) {
		return ErrDuplicateMobile
	}
	if patch.Language != "" {
		lang, err := models.NormalizeLanguage(patch.Language)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrValidation, err)
		}
		merged.Language = lang
	}

	newState := s.state
	newState.CurrentUser = &merged
	newState.Language = merged.Language

	ledger := s.replaceLedgerEntry(ctx, merged)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := slots.NewSQLiteRepository(tx)
		if err := saveSlot(ctx, repo, SlotUsers, ledger); err != nil {
			return err
		}
		return saveSlot(ctx, repo, SlotAuth, newState)
	})
	if err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}

	s.state = newState
	return nil
}

// replaceLedgerEntry returns the ledger with the entry matching user.ID
// replaced. Seed accounts never appear in the ledger, so for them the
// ledger comes back unchanged.
func (s *IdentityStore) replaceLedgerEntry(ctx context.Context, user models.User) []models.User {
	ledger := s.registeredUsers(ctx)
	for i := range ledger {
		if ledger[i].ID == user.ID {
			ledger[i] = user
			break
		}
	}
	return ledger
}

// Logout clears the session. The language preference is retained: it is a
// device preference, not an account attribute.
func (s *IdentityStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentUser = nil
	s.state.IsAuthenticated = false
	s.persistSession(ctx)
}

// Reload replaces the in-memory session with whatever the auth slot holds.
// Used after another program instance may have written the shared database.
func (s *IdentityStore) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, _ := loadSlot[IdentityState](ctx, s.slotRepo(), SlotAuth, s.log)
	if state.Language == "" {
		state.Language = s.defaultLang
	}
	s.state = state
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *IdentityStore) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUser == nil {
		return nil
	}
	u := *s.state.CurrentUser
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (s *IdentityStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsAuthenticated
}

// Language returns the session language.
func (s *IdentityStore) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Language
}
