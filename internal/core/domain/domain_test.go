package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/core/domain"
)

func TestTask_Fingerprint(t *testing.T) {
	t.Parallel()

	base := domain.Task{StableID: "T1", Title: "Buy milk", Due: "2026-09-01"}

	t.Run("stable for identical fields", func(t *testing.T) {
		t.Parallel()
		other := base
		assert.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("ignores stable id", func(t *testing.T) {
		t.Parallel()
		other := base
		other.StableID = "T2"
		assert.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("changes with title", func(t *testing.T) {
		t.Parallel()
		other := base
		other.Title = "Buy oat milk"
		assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("changes with done", func(t *testing.T) {
		t.Parallel()
		other := base
		other.Done = true
		assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("changes with due", func(t *testing.T) {
		t.Parallel()
		other := base
		other.Due = "2026-09-02"
		assert.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("field boundaries do not collide", func(t *testing.T) {
		t.Parallel()
		a := domain.Task{Title: "ab"}
		b := domain.Task{Title: "a", Due: "b"}
		assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}

func TestIndexByID(t *testing.T) {
	t.Parallel()

	t.Run("skips unsynced tasks", func(t *testing.T) {
		t.Parallel()
		index, err := domain.IndexByID([]domain.Task{
			{StableID: "T1", Title: "a"},
			{Title: "local only"},
		})
		require.NoError(t, err)
		assert.Len(t, index, 1)
		assert.Equal(t, "a", index["T1"].Title)
	})

	t.Run("rejects duplicate stable ids", func(t *testing.T) {
		t.Parallel()
		_, err := domain.IndexByID([]domain.Task{
			{StableID: "T1", Title: "a"},
			{StableID: "T1", Title: "b"},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrDuplicateStableID.Error())
	})
}
