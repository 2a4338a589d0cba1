package note_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/mononote/internal/ident"
	"github.com/MrJamesThe3rd/mononote/internal/note"
)

func fixedIDs(id string) ident.Generator {
	return ident.Func(func() string { return id })
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    note.CreateParams
		setupMock func(m *note.MockRepository)
		wantColor string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: note.CreateParams{Content: "buy milk", Category: "Personal", Color: "blue"},
			setupMock: func(m *note.MockRepository) {
				m.EXPECT().Notes(gomock.Any()).Return(nil)
				m.EXPECT().
					SaveNotes(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, notes []note.Note) error {
						require.Len(t, notes, 1)
						return nil
					})
			},
			wantColor: "blue",
		},
		{
			name:   "DefaultColor",
			params: note.CreateParams{Content: "plain"},
			setupMock: func(m *note.MockRepository) {
				m.EXPECT().Notes(gomock.Any()).Return(nil)
				m.EXPECT().SaveNotes(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantColor: note.DefaultColor,
		},
		{
			name:   "SaveError",
			params: note.CreateParams{Content: "doomed"},
			setupMock: func(m *note.MockRepository) {
				m.EXPECT().Notes(gomock.Any()).Return(nil)
				m.EXPECT().SaveNotes(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := note.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := note.NewService(repo, fixedIDs("note-1"))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "note-1", got.ID)
			assert.Equal(t, tt.params.Content, got.Content)
			assert.Equal(t, tt.wantColor, got.Color)
			assert.Positive(t, got.CreatedAt)
		})
	}
}

func TestService_Create_AppendsToExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := []note.Note{{ID: "old", Content: "old note", CreatedAt: 1}}

	repo := note.NewMockRepository(ctrl)
	repo.EXPECT().Notes(gomock.Any()).Return(existing)
	repo.EXPECT().
		SaveNotes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notes []note.Note) error {
			require.Len(t, notes, 2)
			assert.Equal(t, "old", notes[0].ID)
			assert.Equal(t, "new", notes[1].ID)
			return nil
		})

	svc := note.NewService(repo, fixedIDs("new"))
	_, err := svc.Create(context.Background(), note.CreateParams{Content: "another"})
	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := []note.Note{
		{ID: "a", Content: "before", Category: "Personal", CreatedAt: 42, Color: "yellow"},
	}

	repo := note.NewMockRepository(ctrl)
	repo.EXPECT().Notes(gomock.Any()).Return(stored)
	repo.EXPECT().
		SaveNotes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notes []note.Note) error {
			require.Len(t, notes, 1)
			assert.Equal(t, "after", notes[0].Content)
			assert.Equal(t, "Work", notes[0].Category)
			assert.Equal(t, "green", notes[0].Color)
			assert.EqualValues(t, 42, notes[0].CreatedAt)
			return nil
		})

	svc := note.NewService(repo, fixedIDs("unused"))
	got, err := svc.Update(context.Background(), "a", note.UpdateParams{
		Content:  "after",
		Category: "Work",
		Color:    "green",
	})
	require.NoError(t, err)
	assert.Equal(t, "after", got.Content)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := note.NewMockRepository(ctrl)
	repo.EXPECT().Notes(gomock.Any()).Return(nil)

	svc := note.NewService(repo, fixedIDs("unused"))
	_, err := svc.Update(context.Background(), "missing", note.UpdateParams{})
	assert.ErrorIs(t, err, note.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := []note.Note{{ID: "a"}, {ID: "b"}}

	repo := note.NewMockRepository(ctrl)
	repo.EXPECT().Notes(gomock.Any()).Return(stored)
	repo.EXPECT().
		SaveNotes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, notes []note.Note) error {
			require.Len(t, notes, 1)
			assert.Equal(t, "b", notes[0].ID)
			return nil
		})

	svc := note.NewService(repo, fixedIDs("unused"))
	require.NoError(t, svc.Delete(context.Background(), "a"))
}

func TestService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := note.NewMockRepository(ctrl)
	repo.EXPECT().Notes(gomock.Any()).Return(nil)

	svc := note.NewService(repo, fixedIDs("unused"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), note.ErrNotFound)
}

func TestService_List_NewestFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := note.NewMockRepository(ctrl)
	repo.EXPECT().Notes(gomock.Any()).Return([]note.Note{
		{ID: "oldest", CreatedAt: 1},
		{ID: "newest", CreatedAt: 3},
		{ID: "middle", CreatedAt: 2},
	})

	svc := note.NewService(repo, fixedIDs("unused"))
	got := svc.List(context.Background())

	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "middle", got[1].ID)
	assert.Equal(t, "oldest", got[2].ID)
}
