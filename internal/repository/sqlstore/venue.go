package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/model"
	"github.com/sakif/venue-booking/internal/repository"
)

var _ repository.VenueRepository = (*VenueRepo)(nil)

const venueColumns = `id, name, genres, address, city, state, phone, website,
	facebook_link, seeking_talent, seeking_description, image_link,
	created_at, updated_at`

// VenueRepo reads and writes the venues table.
type VenueRepo struct {
	s *Store
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *VenueRepo) scan(row rowScanner) (model.Venue, error) {
	var v model.Venue
	err := row.Scan(
		&v.ID, &v.Name, r.s.dialect.GenresDest(&v.Genres), &v.Address,
		&v.City, &v.State, &v.Phone, &v.Website, &v.FacebookLink,
		&v.SeekingTalent, &v.SeekingDescription, &v.ImageLink,
		&v.CreatedAt, &v.UpdatedAt,
	)
	v.Genres = nonNil(v.Genres)
	return v, err
}

func (r *VenueRepo) query(ctx context.Context, query string, args ...any) ([]model.Venue, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]model.Venue, 0)
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning venue row: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venues: %w", err)
	}
	return venues, nil
}

// Create assigns an id and timestamps, then inserts the venue.
func (r *VenueRepo) Create(ctx context.Context, venue *model.Venue) error {
	venue.ID = xid.New().String()
	venue.Genres = nonNil(venue.Genres)
	now := r.s.now()
	venue.CreatedAt = now
	venue.UpdatedAt = now

	return r.s.inTx(ctx, "create venue", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.s.q(`
			INSERT INTO venues (`+venueColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			venue.ID, venue.Name, r.s.dialect.GenresArg(venue.Genres),
			venue.Address, venue.City, venue.State, venue.Phone,
			venue.Website, venue.FacebookLink, venue.SeekingTalent,
			venue.SeekingDescription, venue.ImageLink,
			venue.CreatedAt, venue.UpdatedAt,
		)
		return err
	})
}

func (r *VenueRepo) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	row := r.s.db.QueryRowContext(ctx,
		r.s.q(`SELECT `+venueColumns+` FROM venues WHERE id = ?`), id)
	v, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("venue", id)
		}
		return nil, fmt.Errorf("%s: getting venue %s: %w", r.s.dialect.Name(), id, err)
	}
	return &v, nil
}

// List returns every venue ordered by area then name.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	venues, err := r.query(ctx,
		`SELECT `+venueColumns+` FROM venues ORDER BY state, city, name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: listing venues: %w", r.s.dialect.Name(), err)
	}
	return venues, nil
}

// ListRecent returns the newest venues first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]model.Venue, error) {
	if limit <= 0 {
		limit = 10
	}
	venues, err := r.query(ctx,
		`SELECT `+venueColumns+` FROM venues ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: listing recent venues: %w", r.s.dialect.Name(), err)
	}
	return venues, nil
}

// Search matches term anywhere in the name, ignoring case. An empty term
// matches every venue.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]model.Venue, error) {
	venues, err := r.query(ctx,
		`SELECT `+venueColumns+` FROM venues
		 WHERE `+r.s.dialect.Fold("name")+` LIKE `+r.s.dialect.Fold("?")+` ESCAPE '\'
		 ORDER BY name, id`, likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("%s: searching venues: %w", r.s.dialect.Name(), err)
	}
	return venues, nil
}

// Update overwrites every editable field. id and created_at never change.
func (r *VenueRepo) Update(ctx context.Context, venue *model.Venue) error {
	venue.Genres = nonNil(venue.Genres)
	venue.UpdatedAt = r.s.now()

	return r.s.inTx(ctx, "update venue", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.s.q(`
			UPDATE venues
			SET name = ?, genres = ?, address = ?, city = ?, state = ?,
			    phone = ?, website = ?, facebook_link = ?, seeking_talent = ?,
			    seeking_description = ?, image_link = ?, updated_at = ?
			WHERE id = ?`),
			venue.Name, r.s.dialect.GenresArg(venue.Genres), venue.Address,
			venue.City, venue.State, venue.Phone, venue.Website,
			venue.FacebookLink, venue.SeekingTalent, venue.SeekingDescription,
			venue.ImageLink, venue.UpdatedAt, venue.ID,
		)
		if err != nil {
			return err
		}
		return checkAffected(res, "venue", venue.ID)
	})
}

// Delete removes the venue. Its shows go with it through ON DELETE CASCADE.
func (r *VenueRepo) Delete(ctx context.Context, id string) error {
	return r.s.inTx(ctx, "delete venue", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.s.q(`DELETE FROM venues WHERE id = ?`), id)
		if err != nil {
			return err
		}
		return checkAffected(res, "venue", id)
	})
}
