package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashleenbeauty/salon-booking-backend/internal/db"
)

const slotColumns = "id, date, starts_at, ends_at, duration_minutes, unavailable, is_booked, created_at, updated_at"

type Repository interface {
	// ExistingIntervals returns the (starts_at, ends_at) pairs already
	// persisted for the date, so the generator can skip them.
	ExistingIntervals(ctx context.Context, date time.Time) ([]Interval, error)

	// InsertMissing bulk-inserts candidate intervals as unbooked slots and
	// returns only the rows actually created. Intervals colliding with the
	// unique (date, starts_at, ends_at) constraint are silently skipped, so
	// concurrent generation for the same date stays idempotent.
	InsertMissing(ctx context.Context, date time.Time, intervals []Interval, slotMinutes int) ([]*Slot, error)

	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)

	// Reserve atomically flips is_booked false -> true. It takes a Querier so
	// the booking engine can run it inside its own transaction. Returns
	// ErrSlotConflict when the slot is booked or blacked out, ErrNotFound
	// when it does not exist.
	Reserve(ctx context.Context, q db.Querier, id string) (*Slot, error)

	// Release sets is_booked to false. Releasing an already free slot is not
	// an error; a missing slot is ErrNotFound.
	Release(ctx context.Context, q db.Querier, id string) (*Slot, error)

	SetUnavailable(ctx context.Context, id string, unavailable bool) (*Slot, error)

	// Delete removes a slot. A slot referenced by a booking is protected by
	// the FK and yields ErrSlotReferenced.
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ExistingIntervals(ctx context.Context, date time.Time) ([]Interval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("starts_at", "ends_at").
		From("public.availability_slots").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build existing intervals query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("existing intervals failed: %w", err)
	}
	defer rows.Close()

	var out []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.StartsAt, &iv.EndsAt); err != nil {
			return nil, fmt.Errorf("scan interval failed: %w", err)
		}
		out = append(out, iv)
	}
	return out, nil
}

func (r *pgxRepository) InsertMissing(ctx context.Context, date time.Time, intervals []Interval, slotMinutes int) ([]*Slot, error) {
	if len(intervals) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Insert("public.availability_slots").
		Columns("date", "starts_at", "ends_at", "duration_minutes")
	for _, iv := range intervals {
		builder = builder.Values(date, iv.StartsAt, iv.EndsAt, slotMinutes)
	}
	query, args, err := builder.
		Suffix("ON CONFLICT (date, starts_at, ends_at) DO NOTHING RETURNING " + slotColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert slots failed: %w", err)
	}
	defer rows.Close()

	var created []*Slot
	for rows.Next() {
		s, err := scanSlotFromRows(rows)
		if err != nil {
			return nil, err
		}
		created = append(created, s)
	}
	return created, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Slot, error) {
	return getSlot(ctx, r.pool, id)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "date", "starts_at", "ends_at", "duration_minutes",
		"unavailable", "is_booked", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.availability_slots")

	if filter.FreeOnly {
		query = query.Where(squirrel.Eq{"unavailable": false, "is_booked": false})
	}
	if filter.After != nil {
		query = query.Where(squirrel.Gt{"starts_at": *filter.After})
	}
	if len(filter.Durations) > 0 {
		query = query.Where(squirrel.Eq{"duration_minutes": filter.Durations})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	query = query.OrderBy("date ASC", "starts_at ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*Slot
	var total int

	for rows.Next() {
		var s Slot
		if err := rows.Scan(
			&s.ID, &s.Date, &s.StartsAt, &s.EndsAt, &s.DurationMinutes,
			&s.Unavailable, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, &s)
	}

	return slots, total, nil
}

func (r *pgxRepository) Reserve(ctx context.Context, q db.Querier, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_slots").
		Set("is_booked", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "is_booked": false, "unavailable": false}).
		Suffix("RETURNING " + slotColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build reserve slot query failed: %w", err)
	}

	s, err := scanSlot(q.QueryRow(ctx, query, args...))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reserve slot failed: %w", err)
	}

	// The compare-and-set matched no row: either the slot is taken or it does
	// not exist.
	if _, err := getSlot(ctx, q, id); err != nil {
		return nil, err
	}
	return nil, ErrSlotConflict
}

func (r *pgxRepository) Release(ctx context.Context, q db.Querier, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_slots").
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + slotColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build release slot query failed: %w", err)
	}

	s, err := scanSlot(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("release slot failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) SetUnavailable(ctx context.Context, id string, unavailable bool) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_slots").
		Set("unavailable", unavailable).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + slotColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set unavailable query failed: %w", err)
	}

	s, err := scanSlot(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set unavailable failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrSlotReferenced
		}
		return fmt.Errorf("delete slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func getSlot(ctx context.Context, q db.Querier, id string) (*Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "date", "starts_at", "ends_at", "duration_minutes",
		"unavailable", "is_booked", "created_at", "updated_at",
	).
		From("public.availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get slot query failed: %w", err)
	}

	s, err := scanSlot(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slot failed: %w", err)
	}
	return s, nil
}

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	if err := row.Scan(
		&s.ID, &s.Date, &s.StartsAt, &s.EndsAt, &s.DurationMinutes,
		&s.Unavailable, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSlotFromRows(rows pgx.Rows) (*Slot, error) {
	var s Slot
	if err := rows.Scan(
		&s.ID, &s.Date, &s.StartsAt, &s.EndsAt, &s.DurationMinutes,
		&s.Unavailable, &s.IsBooked, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan slot failed: %w", err)
	}
	return &s, nil
}
