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

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
	"github.com/restoflow/restoflow/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; pgxmock
// implements it for tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type restaurantRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
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

func (s *Storage) Restaurants() repository.RestaurantRepository {
	return &restaurantRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS restaurants (
            id SERIAL PRIMARY KEY,
            owner_id BIGINT NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            active BOOLEAN NOT NULL DEFAULT TRUE,
            exceptional_closure BOOLEAN NOT NULL DEFAULT FALSE,
            schedule JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS dishes (
            id SERIAL PRIMARY KEY,
            restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(10,2) NOT NULL,
            available BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            tracking_token TEXT UNIQUE NOT NULL,
            restaurant_id BIGINT NOT NULL REFERENCES restaurants(id),
            user_id BIGINT REFERENCES users(id),
            total NUMERIC(10,2) NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            payment_mode TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            fulfillment TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            confirmed_at TIMESTAMPTZ,
            preparing_at TIMESTAMPTZ,
            ready_at TIMESTAMPTZ,
            completed_at TIMESTAMPTZ,
            cancelled_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            dish_id BIGINT NOT NULL REFERENCES dishes(id),
            name TEXT NOT NULL,
            unit_price NUMERIC(10,2) NOT NULL,
            quantity INT NOT NULL,
            subtotal NUMERIC(10,2) NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_restaurant ON orders(restaurant_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_dishes_restaurant ON dishes(restaurant_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- RestaurantRepository implementation ---

const restaurantColumns = `id, owner_id, name, address, phone, active, exceptional_closure, schedule, created_at`

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var (
		r        model.Restaurant
		schedule []byte
	)
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Address, &r.Phone, &r.Active, &r.ExceptionalClosure, &schedule, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if len(schedule) > 0 {
		var ws model.WeeklySchedule
		if err := json.Unmarshal(schedule, &ws); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
		r.Schedule = &ws
	}
	return &r, nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id=$1`
	return scanRestaurant(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *restaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *restaurantRepository) UpdateSchedule(ctx context.Context, restaurantID int64, schedule model.WeeklySchedule) error {
	encoded, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	const query = `UPDATE restaurants SET schedule=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, encoded, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) SetExceptionalClosure(ctx context.Context, restaurantID int64, closed bool) error {
	const query = `UPDATE restaurants SET exceptional_closure=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, closed, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *restaurantRepository) ListDishes(ctx context.Context, restaurantID int64) ([]model.Dish, error) {
	const query = `SELECT id, restaurant_id, name, description, price, available
                   FROM dishes WHERE restaurant_id=$1 ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Dish
	for rows.Next() {
		var d model.Dish
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.Price, &d.Available); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *restaurantRepository) DishesByIDs(ctx context.Context, restaurantID int64, ids []int64) ([]model.Dish, error) {
	const query = `SELECT id, restaurant_id, name, description, price, available
                   FROM dishes WHERE restaurant_id=$1 AND id = ANY($2)`
	rows, err := r.storage.pool.Query(ctx, query, restaurantID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Dish
	for rows.Next() {
		var d model.Dish
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Description, &d.Price, &d.Available); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *restaurantRepository) SetDishAvailability(ctx context.Context, restaurantID, dishID int64, available bool) error {
	const query = `UPDATE dishes SET available=$1 WHERE id=$2 AND restaurant_id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, available, dishID, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, number, tracking_token, restaurant_id, user_id, total, note, phone, email,
                      payment_mode, payment_status, fulfillment, address, status,
                      created_at, confirmed_at, preparing_at, ready_at, completed_at, cancelled_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.TrackingToken, &o.RestaurantID, &o.UserID, &o.Total, &o.Note, &o.Phone, &o.Email,
		&o.PaymentMode, &o.PaymentStatus, &o.Fulfillment, &o.Address, &o.Status,
		&o.CreatedAt, &o.ConfirmedAt, &o.PreparingAt, &o.ReadyAt, &o.CompletedAt, &o.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create persists the order and its items atomically and fills in generated
// identifiers.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (number, tracking_token, restaurant_id, user_id, total, note, phone, email,
             payment_mode, payment_status, fulfillment, address, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
            RETURNING id`
		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.TrackingToken, order.RestaurantID, order.UserID, order.Total,
			order.Note, order.Phone, order.Email, order.PaymentMode, order.PaymentStatus,
			order.Fulfillment, order.Address, order.Status, order.CreatedAt,
		).Scan(&order.ID)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, dish_id, name, unit_price, quantity, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem,
				order.ID, item.DishID, item.Name, item.UnitPrice, item.Quantity, item.Subtotal,
			).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByTrackingToken(ctx context.Context, token string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tracking_token=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, token))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*model.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, restaurantID)
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.Order, len(result))
	for i := range result {
		refs[i] = &result[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*model.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	const query = `SELECT id, order_id, dish_id, name, unit_price, quantity, subtotal
                   FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &item.Name, &item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			return err
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

// stampColumns maps a target status to the timestamp column recorded when the
// order reaches it.
var stampColumns = map[model.OrderStatus]string{
	model.OrderStatusConfirmed: "confirmed_at",
	model.OrderStatusPreparing: "preparing_at",
	model.OrderStatusReady:     "ready_at",
	model.OrderStatusDelivered: "completed_at",
	model.OrderStatusPickedUp:  "completed_at",
	model.OrderStatusCancelled: "cancelled_at",
}

// UpdateStatus performs the compare-and-swap status write: status and its
// timestamp change together or not at all, and only when the row still holds
// the expected current status. Zero affected rows means either the order is
// gone (ErrNotFound) or someone transitioned it first (ErrConflictRetry).
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, at time.Time) error {
	column, ok := stampColumns[to]
	if !ok {
		return domainErrors.ErrInvalidTransition
	}

	query := fmt.Sprintf(`UPDATE orders SET status=$1, %s=$2 WHERE id=$3 AND status=$4`, column)
	tag, err := r.storage.pool.Exec(ctx, query, to, at, orderID, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const existsQuery = `SELECT status FROM orders WHERE id=$1`
	var current model.OrderStatus
	if err := r.storage.pool.QueryRow(ctx, existsQuery, orderID).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.ErrConflictRetry
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
