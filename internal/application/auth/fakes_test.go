package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/fashionhub/auth-service/internal/domain"
)

// ---- fakes ----

type fakeUsers struct {
	byID map[string]domain.User

	verifyHashes map[string]string // tokenHash -> userID
	resetHashes  map[string]string

	createErr      error
	getErr         error
	updateErr      error
	setVerifyErr   error
	setResetErr    error
	deleteErr      error
	setVerifiedErr error

	updatedPasswords map[string]string // userID -> newHash
	verifyCalls      int
	resetCalls       int
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{
		byID:             make(map[string]domain.User),
		verifyHashes:     make(map[string]string),
		resetHashes:      make(map[string]string),
		updatedPasswords: make(map[string]string),
	}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	if f.getErr != nil {
		return domain.User{}, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	if f.getErr != nil {
		return domain.User{}, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUsers) List(_ context.Context) ([]domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Create(_ context.Context, u domain.User) (domain.User, error) {
	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
	}
	u.CreatedAt = time.Now()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[userID]; !ok {
		return domain.ErrUserNotFound()
	}
	delete(f.byID, userID)
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	u.PasswordChangedAt = time.Now()
	f.byID[userID] = u
	f.updatedPasswords[userID] = newHash

	// reset token cleared in the same write
	for h, id := range f.resetHashes {
		if id == userID {
			delete(f.resetHashes, h)
		}
	}
	return nil
}

func (f *fakeUsers) SetEmailVerified(_ context.Context, userID string) error {
	if f.setVerifiedErr != nil {
		return f.setVerifiedErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.EmailVerified = true
	u.EmailVerifiedAt = time.Now()
	f.byID[userID] = u

	for h, id := range f.verifyHashes {
		if id == userID {
			delete(f.verifyHashes, h)
		}
	}
	return nil
}

func (f *fakeUsers) SetVerifyToken(_ context.Context, userID, tokenHash string, _ time.Time) error {
	if f.setVerifyErr != nil {
		return f.setVerifyErr
	}
	f.verifyCalls++
	f.verifyHashes[tokenHash] = userID
	return nil
}

func (f *fakeUsers) SetResetToken(_ context.Context, userID, tokenHash string, _ time.Time) error {
	if f.setResetErr != nil {
		return f.setResetErr
	}
	f.resetCalls++
	f.resetHashes[tokenHash] = userID
	return nil
}

func (f *fakeUsers) GetByVerifyTokenHash(ctx context.Context, tokenHash string) (domain.User, error) {
	id, ok := f.verifyHashes[tokenHash]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) GetByResetTokenHash(ctx context.Context, tokenHash string) (domain.User, error) {
	id, ok := f.resetHashes[tokenHash]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return f.GetByID(ctx, id)
}

// fakeHasher stores passwords as "hashed:" + plaintext.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return fmt.Errorf("mismatch")
}

// fakeSigner issues "tok-<n>-<userID>" and keeps a claims table.
type fakeSigner struct {
	n        int
	claims   map[string]TokenClaims
	issueErr error
	ttl      time.Duration
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{
		claims: make(map[string]TokenClaims),
		ttl:    time.Hour,
	}
}

func (f *fakeSigner) Issue(userID string) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.n++
	tok := fmt.Sprintf("tok-%d-%s", f.n, userID)
	now := time.Now()
	f.claims[tok] = TokenClaims{UserID: userID, IssuedAt: now, ExpiresAt: now.Add(f.ttl)}
	return tok, nil
}

func (f *fakeSigner) Verify(token string) (TokenClaims, error) {
	c, ok := f.claims[token]
	if !ok {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	if time.Now().After(c.ExpiresAt) {
		return TokenClaims{}, domain.ErrTokenExpired()
	}
	return c, nil
}

func (f *fakeSigner) DecodeExpiry(token string) (time.Time, error) {
	c, ok := f.claims[token]
	if !ok {
		return time.Time{}, fmt.Errorf("undecodable token")
	}
	return c.ExpiresAt, nil
}

func (f *fakeSigner) TTL() time.Duration { return f.ttl }

// fakeSecrets generates "secret-<n>" with hash "h(secret-<n>)".
type fakeSecrets struct {
	n   int
	err error
}

func (f *fakeSecrets) Generate() (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.n++
	plain := fmt.Sprintf("secret-%d", f.n)
	return plain, f.Hash(plain), nil
}

func (f *fakeSecrets) Hash(plain string) string { return "h(" + plain + ")" }

// fakeLedger is map-backed with injectable failures.
type fakeLedger struct {
	entries map[string]domain.RevocationReason // token -> reason
	byUser  map[string][]string

	revokeErr    error
	isRevokedErr error
	revokeAllErr error

	revokeAllCalls int
	lastReason     domain.RevocationReason
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		entries: make(map[string]domain.RevocationReason),
		byUser:  make(map[string][]string),
	}
}

func (f *fakeLedger) Revoke(_ context.Context, token, userID string, reason domain.RevocationReason, _ time.Time) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	if _, ok := f.entries[token]; !ok {
		f.entries[token] = reason
		f.byUser[userID] = append(f.byUser[userID], token)
	}
	f.lastReason = reason
	return nil
}

func (f *fakeLedger) IsRevoked(_ context.Context, token string) (bool, error) {
	if f.isRevokedErr != nil {
		return false, f.isRevokedErr
	}
	_, ok := f.entries[token]
	return ok, nil
}

func (f *fakeLedger) RevokeAll(_ context.Context, userID string, reason domain.RevocationReason) (int, error) {
	if f.revokeAllErr != nil {
		return 0, f.revokeAllErr
	}
	f.revokeAllCalls++
	f.lastReason = reason
	n := 0
	for _, tok := range f.byUser[userID] {
		if _, ok := f.entries[tok]; ok {
			delete(f.entries, tok)
			n++
		}
	}
	delete(f.byUser, userID)
	return n, nil
}

// fakeMailer records outgoing requests.
type fakeMailer struct {
	verifyTokens []string
	resetTokens  []string
	lastEmail    string
	lastName     string

	verifyErr error
	resetErr  error
}

func (f *fakeMailer) SendVerificationEmail(_ context.Context, email, plainToken, name string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.verifyTokens = append(f.verifyTokens, plainToken)
	f.lastEmail = email
	f.lastName = name
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(_ context.Context, email, plainToken, name string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resetTokens = append(f.resetTokens, plainToken)
	f.lastEmail = email
	f.lastName = name
	return nil
}

// ---- harness ----

type testEnv struct {
	users   *fakeUsers
	hasher  *fakeHasher
	signer  *fakeSigner
	secrets *fakeSecrets
	ledger  *fakeLedger
	mailer  *fakeMailer
	svc     *Service
}

func newTestEnv(cfg Config, users ...domain.User) *testEnv {
	env := &testEnv{
		users:   newFakeUsers(users...),
		hasher:  &fakeHasher{},
		signer:  newFakeSigner(),
		secrets: &fakeSecrets{},
		ledger:  newFakeLedger(),
		mailer:  &fakeMailer{},
	}
	env.svc = NewService(env.users, env.hasher, env.signer, env.secrets, env.ledger, env.mailer, cfg)
	return env
}

func verifiedUser(id, email, password string) domain.User {
	return domain.User{
		ID:            id,
		Name:          "Test User",
		Email:         email,
		PasswordHash:  "hashed:" + password,
		Role:          string(domain.RoleUser),
		EmailVerified: true,
	}
}
