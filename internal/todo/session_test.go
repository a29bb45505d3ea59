package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/model"
)

func TestSessionCreateFlow(t *testing.T) {
	s, _ := seeded(t)
	sess := NewSession(s)
	assert.Equal(t, StateClosed, sess.State())

	require.NoError(t, sess.OpenForCreate())
	assert.Equal(t, StateNew, sess.State())
	assert.Equal(t, Draft{Status: model.StatusPending}, sess.Draft())

	require.NoError(t, sess.UpdateField(FieldTitle, "Buy milk"))
	items, err := sess.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Item{pending("Buy milk")}, items)
	assert.False(t, sess.IsOpen())
	assert.Equal(t, Draft{}, sess.Draft())
}

func TestSessionEditCopiesItem(t *testing.T) {
	s, _ := seeded(t, pending("a"), pending("b"))
	sess := NewSession(s)

	require.NoError(t, sess.OpenForEdit(1))
	assert.Equal(t, StateEditing, sess.State())
	d := sess.Draft()
	assert.Equal(t, "b", d.Title)
	p, ok := d.Position()
	require.True(t, ok)
	assert.Equal(t, 1, p)

	require.NoError(t, sess.UpdateField(FieldTitle, "changed"))
	it, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "b", it.Title, "draft edits must not touch the store before submit")

	require.NoError(t, sess.UpdateField(FieldStatus, "Completed"))
	items, err := sess.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Item{pending("a"), {Title: "changed", Status: model.StatusCompleted}}, items)
}

func TestSessionDraftCopyIsDetached(t *testing.T) {
	s, _ := seeded(t, pending("a"))
	sess := NewSession(s)
	require.NoError(t, sess.OpenForEdit(0))

	d := sess.Draft()
	*d.Target = 99
	p, _ := sess.Draft().Position()
	assert.Equal(t, 0, p)
}

func TestSessionEmptyTitleAllowed(t *testing.T) {
	s, _ := seeded(t)
	sess := NewSession(s)
	require.NoError(t, sess.OpenForCreate())
	items, err := sess.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Item{pending("")}, items)
}

func TestSessionCancel(t *testing.T) {
	s, kv := seeded(t, pending("a"))
	writes := kv.Writes()
	sess := NewSession(s)

	require.NoError(t, sess.OpenForEdit(0))
	require.NoError(t, sess.UpdateField(FieldTitle, "discarded"))
	sess.Cancel()

	assert.False(t, sess.IsOpen())
	assert.Equal(t, []model.Item{pending("a")}, s.Items())
	assert.Equal(t, writes, kv.Writes())
}

func TestSessionSingleSlot(t *testing.T) {
	s, _ := seeded(t, pending("a"))
	sess := NewSession(s)

	require.NoError(t, sess.OpenForCreate())
	assert.ErrorIs(t, sess.OpenForCreate(), ErrSessionOpen)
	assert.ErrorIs(t, sess.OpenForEdit(0), ErrSessionOpen)
	assert.Equal(t, StateNew, sess.State())
}

func TestSessionClosedOperations(t *testing.T) {
	s, _ := seeded(t)
	sess := NewSession(s)

	assert.ErrorIs(t, sess.UpdateField(FieldTitle, "x"), ErrSessionClosed)
	_, err := sess.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Equal(t, 0, s.Len())
}

func TestSessionOpenForEditOutOfRange(t *testing.T) {
	s, _ := seeded(t, pending("a"))
	sess := NewSession(s)

	assert.ErrorIs(t, sess.OpenForEdit(1), ErrInvalidPosition)
	assert.Equal(t, StateClosed, sess.State())
}

func TestSessionInvalidStatus(t *testing.T) {
	s, _ := seeded(t)
	sess := NewSession(s)
	require.NoError(t, sess.OpenForCreate())

	assert.ErrorIs(t, sess.UpdateField(FieldStatus, "Blocked"), model.ErrInvalidStatus)
	assert.Equal(t, model.StatusPending, sess.Draft().Status)
}

func TestSessionSubmitStaleTargetKeepsDraft(t *testing.T) {
	s, _ := seeded(t, pending("a"), pending("b"))
	sess := NewSession(s)
	require.NoError(t, sess.OpenForEdit(1))

	_, err := s.Remove(context.Background(), 1)
	require.NoError(t, err)

	_, err = sess.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidPosition)
	assert.True(t, sess.IsOpen())
	assert.Equal(t, "b", sess.Draft().Title)

	sess.Cancel()
	assert.Equal(t, []model.Item{pending("a")}, s.Items())
}

func TestSessionSubmitPersistFailureCloses(t *testing.T) {
	s, kv := seeded(t)
	kv.FailWrites = true
	sess := NewSession(s)

	require.NoError(t, sess.OpenForCreate())
	require.NoError(t, sess.UpdateField(FieldTitle, "kept in memory"))
	items, err := sess.Submit(context.Background())
	require.ErrorIs(t, err, ErrPersistence)
	assert.False(t, sess.IsOpen())
	assert.Equal(t, []model.Item{pending("kept in memory")}, items)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("Title")
	require.NoError(t, err)
	assert.Equal(t, FieldTitle, f)
	f, err = ParseField("status")
	require.NoError(t, err)
	assert.Equal(t, FieldStatus, f)
	_, err = ParseField("due")
	assert.ErrorIs(t, err, ErrUnknownField)
}
