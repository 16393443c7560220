package repository

import (
	"strconv"
	"testing"

	"github.com/codedocs/board-manager/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func columnNames(t *testing.T, repo ColumnRepository, boardID string) []string {
	t.Helper()

	columns, err := repo.ListByBoard(boardID)
	require.NoError(t, err)

	names := make([]string, len(columns))
	for i, column := range columns {
		require.Equal(t, i, column.Position, "positions must stay dense")
		names[i] = column.Name
	}
	return names
}

func TestColumnRepository_InsertShiftsPositions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewColumnRepository(db)
	board := createTestBoard(t, db, models.BoardTypeKanban)

	for i, name := range []string{"TODO", "IN PROGRESS", "DONE"} {
		require.NoError(t, repo.Insert(&models.Column{
			BoardID:  board.ID,
			Name:     name,
			Position: i,
		}))
	}
	require.Equal(t, []string{"TODO", "IN PROGRESS", "DONE"}, columnNames(t, repo, board.ID))

	// Inserting in the middle pushes later columns right.
	require.NoError(t, repo.Insert(&models.Column{
		BoardID:  board.ID,
		Name:     "REVIEW",
		Position: 2,
	}))
	require.Equal(t, []string{"TODO", "IN PROGRESS", "REVIEW", "DONE"}, columnNames(t, repo, board.ID))
}

func TestColumnRepository_InsertClampsPosition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewColumnRepository(db)
	board := createTestBoard(t, db, models.BoardTypeKanban)

	require.NoError(t, repo.Insert(&models.Column{BoardID: board.ID, Name: "TODO", Position: 0}))

	past := &models.Column{BoardID: board.ID, Name: "DONE", Position: 99}
	require.NoError(t, repo.Insert(past))
	require.Equal(t, 1, past.Position)

	negative := &models.Column{BoardID: board.ID, Name: "BACKLOG", Position: -5}
	require.NoError(t, repo.Insert(negative))
	require.Equal(t, 0, negative.Position)

	require.Equal(t, []string{"BACKLOG", "TODO", "DONE"}, columnNames(t, repo, board.ID))
}

func TestColumnRepository_DeleteRemovesNodesAndClosesGap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewColumnRepository(db)
	nodeRepo := NewNodeRepository(db)
	board := createTestBoard(t, db, models.BoardTypeKanban)

	columns := make([]*models.Column, 3)
	for i, name := range []string{"TODO", "IN PROGRESS", "DONE"} {
		columns[i] = &models.Column{BoardID: board.ID, Name: name, Position: i}
		require.NoError(t, repo.Insert(columns[i]))
	}

	doomedStatus := strconv.FormatUint(columns[1].ID, 10)
	doomed, err := nodeRepo.Create(board.ID, "#ff0000", &doomedStatus)
	require.NoError(t, err)
	keptStatus := strconv.FormatUint(columns[2].ID, 10)
	kept, err := nodeRepo.Create(board.ID, "#ff0000", &keptStatus)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(columns[1].ID))

	require.Equal(t, []string{"TODO", "DONE"}, columnNames(t, repo, board.ID))

	_, err = nodeRepo.FindByID(doomed.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = nodeRepo.FindByID(kept.ID)
	require.NoError(t, err)
}

func TestColumnRepository_UpdateFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewColumnRepository(db)
	board := createTestBoard(t, db, models.BoardTypeKanban)

	column := &models.Column{BoardID: board.ID, Name: "TODO", Position: 0}
	require.NoError(t, repo.Insert(column))

	updated, err := repo.UpdateFields(column.ID, map[string]interface{}{"name": "BACKLOG"})
	require.NoError(t, err)
	require.Equal(t, "BACKLOG", updated.Name)

	_, err = repo.UpdateFields(9999, map[string]interface{}{"name": "nope"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
