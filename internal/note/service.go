package note

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/mononote/internal/ident"
)

// ErrNotFound is returned when no note with the requested id exists.
var ErrNotFound = errors.New("note not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=note
type Repository interface {
	// Notes returns the stored collection. It never fails: absent or
	// unreadable storage yields an empty collection.
	Notes(ctx context.Context) []Note
	// SaveNotes overwrites the stored collection.
	SaveNotes(ctx context.Context, notes []Note) error
}

type Service struct {
	repo Repository
	ids  ident.Generator
}

func NewService(repo Repository, ids ident.Generator) *Service {
	return &Service{repo: repo, ids: ids}
}

type CreateParams struct {
	Content  string
	Category string
	Color    string
}

type UpdateParams struct {
	Content  string
	Category string
	Color    string
}

// Create appends a new note with a fresh id and the current timestamp.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Note, error) {
	color := params.Color
	if color == "" {
		color = DefaultColor
	}

	n := Note{
		ID:        s.ids.NewID(),
		Content:   params.Content,
		Category:  params.Category,
		CreatedAt: time.Now().UnixMilli(),
		Color:     color,
	}

	notes := s.repo.Notes(ctx)
	notes = append(notes, n)

	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return nil, fmt.Errorf("saving notes: %w", err)
	}

	return &n, nil
}

// Update mutates content, category and color of an existing note in place.
// The creation timestamp is untouched.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Note, error) {
	notes := s.repo.Notes(ctx)

	idx := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	notes[idx].Content = params.Content
	notes[idx].Category = params.Category
	notes[idx].Color = params.Color

	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return nil, fmt.Errorf("saving notes: %w", err)
	}

	updated := notes[idx]

	return &updated, nil
}

// Delete removes the note with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	notes := s.repo.Notes(ctx)

	idx := slices.IndexFunc(notes, func(n Note) bool { return n.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	notes = append(notes[:idx], notes[idx+1:]...)

	if err := s.repo.SaveNotes(ctx, notes); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}

	return nil
}

// List returns all notes in display order: newest first.
func (s *Service) List(ctx context.Context) []Note {
	notes := s.repo.Notes(ctx)

	slices.SortStableFunc(notes, func(a, b Note) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}

		return 0
	})

	return notes
}
