package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo stores refresh-token sessions.  Only the SHA-256 hash of
// the raw token ever reaches the database; revocation is a timestamp so
// a revoked session remains visible for auditing until purged.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a TokenRepo bound to the given database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh records a freshly issued refresh token for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// ValidateRefresh resolves a presented token hash to its user.  Revoked
// and expired sessions are filtered in SQL, so they fail exactly like a
// token that was never issued: sql.ErrNoRows.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM refresh_tokens WHERE token_hash=? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP() LIMIT 1",
		tokenHash).Scan(&userID)
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// RevokeByHash ends the single session behind one refresh token.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser ends every active session of one user, for the
// log-out-everywhere flow.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}

// PurgeExpired deletes sessions that expired before the cutoff.  Called
// opportunistically; losing the race with a concurrent purge is fine.
func (r *TokenRepo) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
