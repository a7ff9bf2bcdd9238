package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taranenko/taskfeed/internal/domain"
	"github.com/taranenko/taskfeed/internal/remote"
	"github.com/taranenko/taskfeed/internal/wiretime"
)

// Store implements remote.Store over the documents table.
type Store struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

var _ remote.Store = (*Store)(nil)

// NewStore creates a document store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Get returns the document at path, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, path string) (*remote.Document, error) {
	collection, id, err := remote.SplitDocPath(path)
	if err != nil {
		return nil, err
	}

	query, args, err := s.sb.
		Select("fields").
		From("documents").
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var blob []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&blob); err != nil {
		return nil, mapError(err, path)
	}

	fields, err := decodeFields(blob)
	if err != nil {
		return nil, mapError(err, path)
	}

	return &remote.Document{ID: id, Fields: fields}, nil
}

// Query returns documents of a collection matching every filter. Ordering is
// supported on wire-timestamp fields, which is what the codecs order by.
func (s *Store) Query(ctx context.Context, collection string, filters []remote.Filter, orderBy []remote.Order, limit int) ([]remote.Document, error) {
	builder := s.sb.
		Select("id", "fields").
		From("documents").
		Where(sq.Eq{"collection": collection})

	for _, f := range filters {
		expr, err := filterExpr(f)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}
		builder = builder.Where(expr)
	}
	for _, o := range orderBy {
		builder = builder.OrderBy(orderExprs(o)...)
	}
	// Insertion order as the stable fallback.
	builder = builder.OrderBy("created_at", "id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, collection)
	}
	defer rows.Close()

	var docs []remote.Document
	for rows.Next() {
		var (
			id   string
			blob []byte
		)
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, mapError(err, collection)
		}
		fields, err := decodeFields(blob)
		if err != nil {
			return nil, mapError(err, remote.DocPath(collection, id))
		}
		docs = append(docs, remote.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, collection)
	}

	if docs == nil {
		docs = []remote.Document{}
	}
	return docs, nil
}

// Add creates a document with a store-assigned id and returns that id.
func (s *Store) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.insert(ctx, collection, id, fields, false); err != nil {
		return "", err
	}
	return id, nil
}

// Set creates or replaces the document at a caller-chosen path.
func (s *Store) Set(ctx context.Context, path string, fields map[string]any) error {
	collection, id, err := remote.SplitDocPath(path)
	if err != nil {
		return err
	}
	return s.insert(ctx, collection, id, fields, true)
}

// Update applies a partial patch to the document at path. Patched fields
// merge over the stored ones; missing documents yield domain.ErrNotFound.
func (s *Store) Update(ctx context.Context, path string, patch map[string]any) error {
	collection, id, err := remote.SplitDocPath(path)
	if err != nil {
		return err
	}

	blob, err := encodeFields(patch)
	if err != nil {
		return mapError(err, path)
	}

	query, args, err := s.sb.
		Update("documents").
		Set("fields", sq.Expr("fields || ?::jsonb", string(blob))).
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, path)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", path, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the document at path. Missing documents yield
// domain.ErrNotFound.
func (s *Store) Delete(ctx context.Context, path string) error {
	collection, id, err := remote.SplitDocPath(path)
	if err != nil {
		return err
	}

	query, args, err := s.sb.
		Delete("documents").
		Where(sq.Eq{"collection": collection, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, path)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", path, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, collection, id string, fields map[string]any, upsert bool) error {
	blob, err := encodeFields(fields)
	if err != nil {
		return mapError(err, remote.DocPath(collection, id))
	}

	builder := s.sb.
		Insert("documents").
		Columns("collection", "id", "fields").
		Values(collection, id, string(blob))
	if upsert {
		builder = builder.Suffix("ON CONFLICT (collection, id) DO UPDATE SET fields = EXCLUDED.fields")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapError(err, remote.DocPath(collection, id))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Filter and order expressions
// ---------------------------------------------------------------------------

// Field names below come from the codecs, never from user input, so they
// are interpolated into JSON path expressions directly.

func filterExpr(f remote.Filter) (sq.Sqlizer, error) {
	if ts, ok := f.Value.(wiretime.Timestamp); ok {
		return timestampFilterExpr(f.Field, f.Op, ts)
	}

	switch f.Op {
	case remote.OpEqual:
		blob, err := json.Marshal(map[string]any{f.Field: f.Value})
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", f.Field, err)
		}
		return sq.Expr("fields @> ?::jsonb", string(blob)), nil
	case remote.OpGreaterOrEqual:
		return sq.Expr(fmt.Sprintf("(fields->>'%s')::numeric >= ?", f.Field), f.Value), nil
	case remote.OpLessOrEqual:
		return sq.Expr(fmt.Sprintf("(fields->>'%s')::numeric <= ?", f.Field), f.Value), nil
	default:
		return nil, fmt.Errorf("filter %s: unsupported op %q", f.Field, f.Op)
	}
}

func timestampFilterExpr(field string, op remote.FilterOp, ts wiretime.Timestamp) (sq.Sqlizer, error) {
	var cmp string
	switch op {
	case remote.OpEqual:
		cmp = "="
	case remote.OpGreaterOrEqual:
		cmp = ">="
	case remote.OpLessOrEqual:
		cmp = "<="
	default:
		return nil, fmt.Errorf("filter %s: unsupported op %q", field, op)
	}
	return sq.Expr(fmt.Sprintf("%s %s ?", timestampMsExpr(field), cmp), wiretime.FromWire(ts)), nil
}

// timestampMsExpr projects a stored wire timestamp to epoch milliseconds.
func timestampMsExpr(field string) string {
	return fmt.Sprintf(
		"((fields#>>'{%s,%s,seconds}')::bigint * 1000 + (fields#>>'{%s,%s,nanos}')::bigint / 1000000)",
		field, timestampTag, field, timestampTag,
	)
}

func orderExprs(o remote.Order) []string {
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	return []string{fmt.Sprintf("%s %s", timestampMsExpr(o.Field), dir)}
}
