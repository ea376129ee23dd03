package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/model"
	"github.com/sakif/venue-booking/internal/repository"
)

var _ repository.ShowRepository = (*ShowRepo)(nil)

// ShowRepo reads and writes the shows table.
type ShowRepo struct {
	s *Store
}

// Create inserts a show. A zero StartTime defaults to now.
//
// Both references are checked inside the transaction so the caller learns
// which side is missing; the FOREIGN KEY constraints still guard against a
// concurrent delete between the check and the insert.
func (r *ShowRepo) Create(ctx context.Context, show *model.Show) error {
	show.ID = xid.New().String()
	if show.StartTime.IsZero() {
		show.StartTime = r.s.now()
	}
	show.StartTime = show.StartTime.UTC()

	return r.s.inTx(ctx, "create show", func(tx *sql.Tx) error {
		if err := r.mustExist(ctx, tx, "artists", "artist", show.ArtistID); err != nil {
			return err
		}
		if err := r.mustExist(ctx, tx, "venues", "venue", show.VenueID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, r.s.q(`
			INSERT INTO shows (id, artist_id, venue_id, start_time)
			VALUES (?, ?, ?, ?)`),
			show.ID, show.ArtistID, show.VenueID, show.StartTime,
		)
		if err != nil && r.s.dialect.IsForeignKeyViolation(err) {
			return apperror.InvalidReference("show", show.ID)
		}
		return err
	})
}

func (r *ShowRepo) mustExist(ctx context.Context, tx *sql.Tx, table, resource, id string) error {
	var n int
	// table is one of two constants above, never user input.
	err := tx.QueryRowContext(ctx,
		r.s.q(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`), id).Scan(&n)
	if err != nil {
		return fmt.Errorf("checking %s %s: %w", resource, id, err)
	}
	if n == 0 {
		return apperror.InvalidReference(resource, id)
	}
	return nil
}

// List returns shows joined with their artist and venue, earliest first.
func (r *ShowRepo) List(ctx context.Context, filter repository.ShowFilter) ([]model.ShowListing, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.q(`
		SELECT s.id, s.artist_id, s.venue_id, s.start_time,
		       a.name, a.image_link, v.name, v.image_link
		FROM shows s
		JOIN artists a ON a.id = s.artist_id
		JOIN venues  v ON v.id = s.venue_id
		WHERE (? = '' OR s.venue_id = ?)
		  AND (? = '' OR s.artist_id = ?)
		ORDER BY s.start_time, s.id`),
		filter.VenueID, filter.VenueID, filter.ArtistID, filter.ArtistID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: listing shows: %w", r.s.dialect.Name(), err)
	}
	defer rows.Close()

	shows := make([]model.ShowListing, 0)
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(
			&l.ID, &l.ArtistID, &l.VenueID, &l.StartTime,
			&l.ArtistName, &l.ArtistImageLink, &l.VenueName, &l.VenueImageLink,
		); err != nil {
			return nil, fmt.Errorf("%s: scanning show row: %w", r.s.dialect.Name(), err)
		}
		shows = append(shows, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterating shows: %w", r.s.dialect.Name(), err)
	}
	return shows, nil
}
