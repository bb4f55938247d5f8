package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, block *Block) error
	GetByID(ctx context.Context, id string) (*Block, error)
	List(ctx context.Context, filter Filter) ([]*Block, int, error)
	Update(ctx context.Context, block *Block) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Block) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_blocks").
		Columns("start_date", "end_date", "start_minute", "end_minute", "weekdays").
		Values(b.StartDate, b.EndDate, b.StartMinute, b.EndMinute, toInt32s(b.Weekdays)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create block query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Block, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "start_date", "end_date", "start_minute", "end_minute", "weekdays",
		"created_at", "updated_at",
	).
		From("public.availability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get block query failed: %w", err)
	}

	b, err := scanBlock(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get block failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Block, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "start_date", "end_date", "start_minute", "end_minute", "weekdays",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.availability_blocks").
		OrderBy("start_date ASC", "start_minute ASC")

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
		return nil, 0, fmt.Errorf("build list blocks query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []*Block
	var total int

	for rows.Next() {
		var b Block
		var weekdays []int32
		if err := rows.Scan(
			&b.ID, &b.StartDate, &b.EndDate, &b.StartMinute, &b.EndMinute, &weekdays,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan block failed: %w", err)
		}
		b.Weekdays = toInts(weekdays)
		blocks = append(blocks, &b)
	}

	return blocks, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Block) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_blocks").
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("start_minute", b.StartMinute).
		Set("end_minute", b.EndMinute).
		Set("weekdays", toInt32s(b.Weekdays)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update block query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update block failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete block query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete block failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBlock(row pgx.Row) (*Block, error) {
	var b Block
	var weekdays []int32
	if err := row.Scan(
		&b.ID, &b.StartDate, &b.EndDate, &b.StartMinute, &b.EndMinute, &weekdays,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Weekdays = toInts(weekdays)
	return &b, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
