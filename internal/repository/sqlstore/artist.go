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

var _ repository.ArtistRepository = (*ArtistRepo)(nil)

const artistColumns = `id, name, genres, city, state, phone, website,
	facebook_link, seeking_venue, seeking_description, image_link,
	created_at, updated_at`

// ArtistRepo reads and writes the artists table.
type ArtistRepo struct {
	s *Store
}

func (r *ArtistRepo) scan(row rowScanner) (model.Artist, error) {
	var a model.Artist
	err := row.Scan(
		&a.ID, &a.Name, r.s.dialect.GenresDest(&a.Genres), &a.City,
		&a.State, &a.Phone, &a.Website, &a.FacebookLink, &a.SeekingVenue,
		&a.SeekingDescription, &a.ImageLink, &a.CreatedAt, &a.UpdatedAt,
	)
	a.Genres = nonNil(a.Genres)
	return a, err
}

func (r *ArtistRepo) query(ctx context.Context, query string, args ...any) ([]model.Artist, error) {
	rows, err := r.s.db.QueryContext(ctx, r.s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artists := make([]model.Artist, 0)
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artist row: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artists: %w", err)
	}
	return artists, nil
}

func (r *ArtistRepo) Create(ctx context.Context, artist *model.Artist) error {
	artist.ID = xid.New().String()
	artist.Genres = nonNil(artist.Genres)
	now := r.s.now()
	artist.CreatedAt = now
	artist.UpdatedAt = now

	return r.s.inTx(ctx, "create artist", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.s.q(`
			INSERT INTO artists (`+artistColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			artist.ID, artist.Name, r.s.dialect.GenresArg(artist.Genres),
			artist.City, artist.State, artist.Phone, artist.Website,
			artist.FacebookLink, artist.SeekingVenue,
			artist.SeekingDescription, artist.ImageLink,
			artist.CreatedAt, artist.UpdatedAt,
		)
		return err
	})
}

func (r *ArtistRepo) GetByID(ctx context.Context, id string) (*model.Artist, error) {
	row := r.s.db.QueryRowContext(ctx,
		r.s.q(`SELECT `+artistColumns+` FROM artists WHERE id = ?`), id)
	a, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("artist", id)
		}
		return nil, fmt.Errorf("%s: getting artist %s: %w", r.s.dialect.Name(), id, err)
	}
	return &a, nil
}

func (r *ArtistRepo) List(ctx context.Context) ([]model.Artist, error) {
	artists, err := r.query(ctx,
		`SELECT `+artistColumns+` FROM artists ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: listing artists: %w", r.s.dialect.Name(), err)
	}
	return artists, nil
}

func (r *ArtistRepo) ListRecent(ctx context.Context, limit int) ([]model.Artist, error) {
	if limit <= 0 {
		limit = 10
	}
	artists, err := r.query(ctx,
		`SELECT `+artistColumns+` FROM artists ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: listing recent artists: %w", r.s.dialect.Name(), err)
	}
	return artists, nil
}

// Search uses the same case-insensitive substring rule as VenueRepo.Search.
func (r *ArtistRepo) Search(ctx context.Context, term string) ([]model.Artist, error) {
	artists, err := r.query(ctx,
		`SELECT `+artistColumns+` FROM artists
		 WHERE `+r.s.dialect.Fold("name")+` LIKE `+r.s.dialect.Fold("?")+` ESCAPE '\'
		 ORDER BY name, id`, likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("%s: searching artists: %w", r.s.dialect.Name(), err)
	}
	return artists, nil
}

func (r *ArtistRepo) Update(ctx context.Context, artist *model.Artist) error {
	artist.Genres = nonNil(artist.Genres)
	artist.UpdatedAt = r.s.now()

	return r.s.inTx(ctx, "update artist", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.s.q(`
			UPDATE artists
			SET name = ?, genres = ?, city = ?, state = ?, phone = ?,
			    website = ?, facebook_link = ?, seeking_venue = ?,
			    seeking_description = ?, image_link = ?, updated_at = ?
			WHERE id = ?`),
			artist.Name, r.s.dialect.GenresArg(artist.Genres), artist.City,
			artist.State, artist.Phone, artist.Website, artist.FacebookLink,
			artist.SeekingVenue, artist.SeekingDescription, artist.ImageLink,
			artist.UpdatedAt, artist.ID,
		)
		if err != nil {
			return err
		}
		return checkAffected(res, "artist", artist.ID)
	})
}

func (r *ArtistRepo) Delete(ctx context.Context, id string) error {
	return r.s.inTx(ctx, "delete artist", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.s.q(`DELETE FROM artists WHERE id = ?`), id)
		if err != nil {
			return err
		}
		return checkAffected(res, "artist", id)
	})
}
