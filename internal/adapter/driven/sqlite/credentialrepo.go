package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ericfisherdev/taskdeck/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port.
// When constructed with a 32-byte key, values are encrypted with AES-256-GCM
// before write and decrypted after read; with a nil key values are stored as
// plaintext. Expiry is enforced on read: an expired row is reported as absent.
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil disables encryption at rest.
	now func() time.Time
}

// NewCredentialRepo creates a new CredentialRepo. key must be 32 bytes for
// AES-256-GCM, or nil to store values unencrypted.
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, key: key, now: time.Now}
}

// Set stores or replaces the credential under name with an expiry of ttl from now.
func (r *CredentialRepo) Set(ctx context.Context, name, value string, ttl time.Duration) error {
	stored, err := r.encode(value)
	if err != nil {
		return err
	}

	expiresAt := r.now().Add(ttl).UTC()

	const query = `INSERT OR REPLACE INTO credentials (name, value, expires_at, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	_, err = r.db.Writer.ExecContext(ctx, query, name, stored, expiresAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set credential %q: %w", name, err)
	}
	return nil
}

// Get retrieves the plaintext credential for name.
// Returns ("", nil) when no credential exists or the stored one has expired.
func (r *CredentialRepo) Get(ctx context.Context, name string) (string, error) {
	const query = `SELECT value, expires_at FROM credentials WHERE name = ?`
	var stored, expiresAt string
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&stored, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get credential %q: %w", name, err)
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil {
		return "", fmt.Errorf("parse expires_at for credential %q: %w", name, err)
	}
	if !expiry.After(r.now()) {
		return "", nil
	}

	value, err := r.decode(stored)
	if err != nil {
		return "", fmt.Errorf("decode credential %q: %w", name, err)
	}
	return value, nil
}

// Delete removes the credential for name. Deleting an absent row is a no-op.
func (r *CredentialRepo) Delete(ctx context.Context, name string) error {
	const query = `DELETE FROM credentials WHERE name = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("delete credential %q: %w", name, err)
	}
	return nil
}

// encode prepares a value for storage, encrypting when a key is configured.
func (r *CredentialRepo) encode(value string) (string, error) {
	if r.key == nil {
		return value, nil
	}
	return r.encrypt(value)
}

// decode reverses encode.
func (r *CredentialRepo) decode(stored string) (string, error) {
	if r.key == nil {
		return stored, nil
	}
	return r.decrypt(stored)
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
