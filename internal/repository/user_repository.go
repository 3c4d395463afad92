package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/airnest/listing-reservation/internal/model"
    "github.com/airnest/listing-reservation/internal/utils"
)

// UserRepo persists hosts and guests in the shared 'users' table and
// owns the guest wallet balance.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
        email, hash, role)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,email,password_hash,role,funds_cents,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
        email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FundsCents, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,email,password_hash,role,funds_cents,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
        id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FundsCents, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// AddFunds credits a guest's wallet and returns the new balance.  The
// increment and read-back run in one transaction so concurrent credits
// never lose an update.  Returns sql.ErrNoRows for an unknown user and
// ErrNotAuthorized when the user is not a guest.
func (r *UserRepo) AddFunds(ctx context.Context, userID uint64, amountCents int64) (int64, error) {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    var role string
    if err := tx.QueryRowContext(ctx, "SELECT role FROM users WHERE id=? FOR UPDATE", userID).Scan(&role); err != nil {
        return 0, err
    }
    if role != model.RoleGuest {
        return 0, ErrNotAuthorized
    }
    if _, err := tx.ExecContext(ctx, "UPDATE users SET funds_cents = funds_cents + ? WHERE id=?", amountCents, userID); err != nil {
        return 0, err
    }
    var balance int64
    if err := tx.QueryRowContext(ctx, "SELECT funds_cents FROM users WHERE id=?", userID).Scan(&balance); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return balance, nil
}

// Funds reads a guest's wallet balance.
func (r *UserRepo) Funds(ctx context.Context, userID uint64) (int64, error) {
    var balance int64
    err := r.DB.QueryRowContext(ctx, "SELECT funds_cents FROM users WHERE id=? LIMIT 1", userID).Scan(&balance)
    if errors.Is(err, sql.ErrNoRows) {
        return 0, err
    }
    return balance, err
}
