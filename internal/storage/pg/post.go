package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/confessd-dev/confessd/internal/storage"
	"github.com/confessd-dev/confessd/shared/domain"
	internal_errors "github.com/confessd-dev/confessd/shared/errors"
)

// FetchAll returns every confession, newest first. The reaction tally is
// stored as a JSONB column so unknown kinds written by newer clients survive
// a round trip through this one.
func (s *Storage) FetchAll(ctx context.Context) ([]storage.RawPost, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT
		id,
		text,
		tag,
		tag_label,
		created_at,
		reactions,
		COALESCE(author_id, ''),
		COALESCE(author_nickname, ''),
		COALESCE(author_color, '')
	FROM confessions
	ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []storage.RawPost
	for rows.Next() {
		var record storage.RawPost
		var reactionsRaw []byte
		err := rows.Scan(
			&record.Id,
			&record.Text,
			&record.Tag,
			&record.TagLabel,
			&record.CreatedAt,
			&reactionsRaw,
			&record.AuthorId,
			&record.AuthorNickname,
			&record.AuthorColor,
		)
		if err != nil {
			return nil, err
		}
		if len(reactionsRaw) > 0 {
			if err := json.Unmarshal(reactionsRaw, &record.Reactions); err != nil {
				return nil, err
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Insert saves a new confession and returns the record with the
// server-assigned id and created_at filled in.
func (s *Storage) Insert(ctx context.Context, record storage.RawPost) (storage.RawPost, error) {
	reactionsRaw, err := json.Marshal(record.Reactions)
	if err != nil {
		return storage.RawPost{}, err
	}

	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond
	err = s.db.QueryRowContext(ctx, `
	INSERT INTO confessions(text, tag, tag_label, created_at, reactions, author_id, author_nickname, author_color)
	VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
	RETURNING id, created_at`,
		record.Text, record.Tag, record.TagLabel, createdTs, reactionsRaw,
		record.AuthorId, record.AuthorNickname, record.AuthorColor,
	).Scan(&record.Id, &record.CreatedAt)
	if err != nil {
		return storage.RawPost{}, err
	}
	return record, nil
}

// UpdateReactions overwrites the entire tally for one confession.
func (s *Storage) UpdateReactions(ctx context.Context, id domain.PostId, tally domain.Tally) error {
	reactionsRaw, err := json.Marshal(tally)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
	UPDATE confessions SET
		reactions = $1
	WHERE id = $2`, reactionsRaw, id)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Confession not found", StatusCode: 404}
	}
	return nil
}

// Get fetches a single confession by id. Used by the seeder and tests.
func (s *Storage) Get(ctx context.Context, id domain.PostId) (storage.RawPost, error) {
	var record storage.RawPost
	var reactionsRaw []byte
	err := s.db.QueryRowContext(ctx, `
	SELECT
		id,
		text,
		tag,
		tag_label,
		created_at,
		reactions,
		COALESCE(author_id, ''),
		COALESCE(author_nickname, ''),
		COALESCE(author_color, '')
	FROM confessions
	WHERE id = $1`, id).Scan(
		&record.Id,
		&record.Text,
		&record.Tag,
		&record.TagLabel,
		&record.CreatedAt,
		&reactionsRaw,
		&record.AuthorId,
		&record.AuthorNickname,
		&record.AuthorColor,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RawPost{}, &internal_errors.ErrorWithStatusCode{Message: "Confession not found", StatusCode: 404}
		}
		return storage.RawPost{}, err
	}
	if len(reactionsRaw) > 0 {
		if err := json.Unmarshal(reactionsRaw, &record.Reactions); err != nil {
			return storage.RawPost{}, err
		}
	}
	return record, nil
}
