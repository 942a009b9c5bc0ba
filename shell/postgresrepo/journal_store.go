package postgresrepo

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-lending-go/shell"
)

const (
	tableEventJournal = "event_journal"

	colEventType  = "event_type"
	colOccurredAt = "occurred_at"
	colPayload    = "payload"
	colMetadata   = "metadata"

	castTimestamp = "?::timestamp with time zone"
	castJsonb     = "?::jsonb"
)

// JournalStore is the PostgreSQL implementation of shell.AppendsJournalEvents.
// The journal is the append-only record of every published domain event.
type JournalStore struct {
	repo Repository
}

// Append persists the serialized event, idempotent per event ID.
func (s JournalStore) Append(ctx context.Context, storableEvent shell.StorableEvent) error {
	insertStmt := s.repo.dialect().
		Insert(tableEventJournal).
		Rows(goqu.Record{
			colEventID:    storableEvent.EventID,
			colEventType:  storableEvent.EventType,
			colOccurredAt: goqu.L(castTimestamp, storableEvent.OccurredAt),
			colPayload:    goqu.L(castJsonb, string(storableEvent.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(storableEvent.MetadataJSON)),
		}).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if _, execErr := s.repo.exec(ctx, sqlQuery); execErr != nil {
		return execErr
	}

	return nil
}

// ReadSince returns all journaled events that occurred at or after the given
// instant, oldest first. This is the redelivery path: replayed events flow
// through the same conversion and dispatch as live ones, and every consumer
// applies them idempotently per event ID.
func (s JournalStore) ReadSince(ctx context.Context, since time.Time) (shell.StorableEvents, error) {
	selectStmt := s.repo.dialect().
		From(tableEventJournal).
		Select(colEventID, colEventType, colOccurredAt, colPayload, colMetadata).
		Where(goqu.C(colOccurredAt).Gte(since)).
		Order(goqu.C(colOccurredAt).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.repo.query(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer s.repo.closeRows(rows)

	storableEvents := shell.StorableEvents{}

	for rows.Next() {
		var storableEvent shell.StorableEvent
		if scanErr := rows.Scan(
			&storableEvent.EventID,
			&storableEvent.EventType,
			&storableEvent.OccurredAt,
			&storableEvent.PayloadJSON,
			&storableEvent.MetadataJSON,
		); scanErr != nil {
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return storableEvents, nil
}
