package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/domain/repository"
)

// pool is the subset of pgxpool.Pool the storage relies on; tests substitute
// a mock implementation.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type memberRepository struct {
	storage *Storage
}

type rewardRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type contractRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pgPool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pgPool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Members() repository.MemberRepository {
	return &memberRepository{storage: s}
}

func (s *Storage) Rewards() repository.RewardRepository {
	return &rewardRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Contracts() repository.ContractRepository {
	return &contractRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS members (
            id SERIAL PRIMARY KEY,
            user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            tier TEXT NOT NULL DEFAULT 'member',
            points BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0),
            lifetime_spend DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (lifetime_spend >= 0),
            birth_month INT NOT NULL DEFAULT 0,
            birth_day INT NOT NULL DEFAULT 0,
            joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            tier_updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS rewards (
            id SERIAL PRIMARY KEY,
            member_id BIGINT NOT NULL REFERENCES members(id),
            type TEXT NOT NULL,
            point_cost BIGINT NOT NULL DEFAULT 0,
            amount_off DOUBLE PRECISION NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'active',
            redeemed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            used_at TIMESTAMPTZ,
            expires_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT REFERENCES users(id),
            email TEXT NOT NULL,
            number TEXT UNIQUE NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            placed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS contracts (
            id SERIAL PRIMARY KEY,
            designer_name TEXT NOT NULL,
            designer_email TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'draft',
            envelope_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            sent_at TIMESTAMPTZ,
            completed_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_guest_email ON orders(email) WHERE user_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_member ON rewards(member_id, redeemed_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_rewards_expiry ON rewards(expires_at) WHERE status = 'active'`,
		`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- MemberRepository implementation ---

func (r *memberRepository) Create(ctx context.Context, userID int64, birthMonth, birthDay int) (*model.Member, error) {
	const query = `INSERT INTO members (user_id, birth_month, birth_day)
                   VALUES ($1, $2, $3)
                   RETURNING id, tier, points, lifetime_spend, joined_at, tier_updated_at`
	m := model.Member{UserID: userID, BirthMonth: birthMonth, BirthDay: birthDay}
	err := r.storage.pool.QueryRow(ctx, query, userID, birthMonth, birthDay).
		Scan(&m.ID, &m.Tier, &m.Points, &m.LifetimeSpend, &m.JoinedAt, &m.TierUpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) GetByUserID(ctx context.Context, userID int64) (*model.Member, error) {
	const query = `SELECT id, user_id, tier, points, lifetime_spend, birth_month, birth_day, joined_at, tier_updated_at
                   FROM members WHERE user_id=$1`
	var m model.Member
	err := r.storage.pool.QueryRow(ctx, query, userID).
		Scan(&m.ID, &m.UserID, &m.Tier, &m.Points, &m.LifetimeSpend, &m.BirthMonth, &m.BirthDay, &m.JoinedAt, &m.TierUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *memberRepository) AccrueSpend(ctx context.Context, userID int64, points int64, spend float64, tier model.Tier) (*model.Member, error) {
	const query = `UPDATE members
                   SET points = points + $2,
                       lifetime_spend = lifetime_spend + $3,
                       tier_updated_at = CASE WHEN tier <> $4 THEN NOW() ELSE tier_updated_at END,
                       tier = $4
                   WHERE user_id = $1
                   RETURNING id, user_id, tier, points, lifetime_spend, birth_month, birth_day, joined_at, tier_updated_at`
	var m model.Member
	err := r.storage.pool.QueryRow(ctx, query, userID, points, spend, tier).
		Scan(&m.ID, &m.UserID, &m.Tier, &m.Points, &m.LifetimeSpend, &m.BirthMonth, &m.BirthDay, &m.JoinedAt, &m.TierUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// --- RewardRepository implementation ---

const rewardColumns = `id, member_id, type, point_cost, amount_off, status, redeemed_at, used_at, expires_at`

func scanReward(row pgx.Row) (*model.Reward, error) {
	var rw model.Reward
	err := row.Scan(&rw.ID, &rw.MemberID, &rw.Type, &rw.PointCost, &rw.AmountOff, &rw.Status, &rw.RedeemedAt, &rw.UsedAt, &rw.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *rewardRepository) Redeem(ctx context.Context, memberID int64, rewardType model.RewardType, pointCost int64, amountOff float64, expiresAt time.Time) (*model.Reward, error) {
	var reward *model.Reward
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const balanceQuery = `SELECT points FROM members WHERE id=$1 FOR UPDATE`
		var points int64
		if err := tx.QueryRow(ctx, balanceQuery, memberID).Scan(&points); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if points < pointCost {
			return domainErrors.ErrInsufficientPoints
		}

		const deduct = `UPDATE members SET points = points - $2 WHERE id=$1`
		if _, err := tx.Exec(ctx, deduct, memberID, pointCost); err != nil {
			return err
		}

		const insert = `INSERT INTO rewards (member_id, type, point_cost, amount_off, status, expires_at)
                        VALUES ($1, $2, $3, $4, 'active', $5)
                        RETURNING ` + rewardColumns
		rw, err := scanReward(tx.QueryRow(ctx, insert, memberID, rewardType, pointCost, amountOff, expiresAt))
		if err != nil {
			return err
		}
		reward = rw
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reward, nil
}

func (r *rewardRepository) GetByID(ctx context.Context, id int64) (*model.Reward, error) {
	const query = `SELECT ` + rewardColumns + ` FROM rewards WHERE id=$1`
	reward, err := scanReward(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return reward, nil
}

func (r *rewardRepository) ListByMember(ctx context.Context, memberID int64) ([]model.Reward, error) {
	const query = `SELECT ` + rewardColumns + `
                   FROM rewards WHERE member_id=$1 ORDER BY redeemed_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reward
	for rows.Next() {
		var rw model.Reward
		if err := rows.Scan(&rw.ID, &rw.MemberID, &rw.Type, &rw.PointCost, &rw.AmountOff, &rw.Status, &rw.RedeemedAt, &rw.UsedAt, &rw.ExpiresAt); err != nil {
			return nil, err
		}
		result = append(result, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus performs the lifecycle transition as one atomic write. The
// used_at stamp is set inside the same statement, only on the first
// transition into 'used'; later writes never overwrite it.
func (r *rewardRepository) UpdateStatus(ctx context.Context, id int64, status model.RewardStatus) (*model.Reward, error) {
	const query = `UPDATE rewards
                   SET status = $2,
                       used_at = CASE WHEN $2 = 'used' AND used_at IS NULL THEN NOW() ELSE used_at END
                   WHERE id = $1
                   RETURNING ` + rewardColumns
	reward, err := scanReward(r.storage.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return reward, nil
}

func (r *rewardRepository) SelectExpiredBatch(ctx context.Context, limit int) ([]model.Reward, error) {
	const selectQuery = `SELECT ` + rewardColumns + `
                         FROM rewards
                         WHERE status = 'active' AND expires_at < NOW()
                         ORDER BY expires_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var rewards []model.Reward
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rw model.Reward
			if err := rows.Scan(&rw.ID, &rw.MemberID, &rw.Type, &rw.PointCost, &rw.AmountOff, &rw.Status, &rw.RedeemedAt, &rw.UsedAt, &rw.ExpiresAt); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE rewards SET status='expired' WHERE id=$1`, rw.ID); err != nil {
				return err
			}
			rw.Status = model.RewardStatusExpired
			rewards = append(rewards, rw)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, email, number, total, items, placed_at`

func scanOrderRow(scan func(dest ...any) error) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	if err := scan(&o.ID, &o.UserID, &o.Email, &o.Number, &o.Total, &items, &o.PlacedAt); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	const query = `INSERT INTO orders (user_id, email, number, total, items)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, placed_at`
	created := *order
	err = r.storage.pool.QueryRow(ctx, query, order.UserID, order.Email, order.Number, order.Total, items).
		Scan(&created.ID, &created.PlacedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE number=$1`
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, number).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders WHERE user_id=$1 ORDER BY placed_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *orderRepository) ListGuestByEmail(ctx context.Context, email string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders WHERE email=$1 AND user_id IS NULL ORDER BY placed_at`
	return r.listOrders(ctx, query, email)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrderRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LinkUser attaches a user to a guest order. The user_id IS NULL guard makes
// the link a one-time write: a racing reconcile loses cleanly and sees zero
// rows affected.
func (r *orderRepository) LinkUser(ctx context.Context, orderID, userID int64) (bool, error) {
	const query = `UPDATE orders SET user_id=$2 WHERE id=$1 AND user_id IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- ContractRepository implementation ---

const contractColumns = `id, designer_name, designer_email, status, envelope_id, created_at, sent_at, completed_at`

func scanContract(row pgx.Row) (*model.Contract, error) {
	var c model.Contract
	err := row.Scan(&c.ID, &c.DesignerName, &c.DesignerEmail, &c.Status, &c.EnvelopeID, &c.CreatedAt, &c.SentAt, &c.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contractRepository) Create(ctx context.Context, name, email string) (*model.Contract, error) {
	const query = `INSERT INTO contracts (designer_name, designer_email)
                   VALUES ($1, $2)
                   RETURNING ` + contractColumns
	return scanContract(r.storage.pool.QueryRow(ctx, query, name, email))
}

func (r *contractRepository) GetByID(ctx context.Context, id int64) (*model.Contract, error) {
	const query = `SELECT ` + contractColumns + ` FROM contracts WHERE id=$1`
	contract, err := scanContract(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (r *contractRepository) MarkSent(ctx context.Context, id int64, envelopeID string) (*model.Contract, error) {
	const query = `UPDATE contracts
                   SET status='sent', envelope_id=$2, sent_at=NOW()
                   WHERE id=$1
                   RETURNING ` + contractColumns
	contract, err := scanContract(r.storage.pool.QueryRow(ctx, query, id, envelopeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (r *contractRepository) ListSent(ctx context.Context, limit int) ([]model.Contract, error) {
	const query = `SELECT ` + contractColumns + `
                   FROM contracts WHERE status='sent' ORDER BY sent_at LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Contract
	for rows.Next() {
		var c model.Contract
		if err := rows.Scan(&c.ID, &c.DesignerName, &c.DesignerEmail, &c.Status, &c.EnvelopeID, &c.CreatedAt, &c.SentAt, &c.CompletedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *contractRepository) SetStatus(ctx context.Context, id int64, status model.ContractStatus) error {
	const query = `UPDATE contracts
                   SET status=$2,
                       completed_at = CASE WHEN $2 IN ('signed','declined') THEN NOW() ELSE completed_at END
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
