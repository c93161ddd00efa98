package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/markdown"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("extracts tasks and markers", func(t *testing.T) {
		t.Parallel()
		text := "## Open Tasks\n" +
			"\n" +
			"- [ ] Buy milk %%id:T1%%\n" +
			"- [x] Ship release (due 2026-09-01) %%id:T2%%\n" +
			"- [ ] Water plants\n"

		_, tasks := markdown.Parse(text)
		require.Len(t, tasks, 3)

		assert.Equal(t, domain.Task{StableID: "T1", Title: "Buy milk"}, tasks[0])
		assert.Equal(t, domain.Task{StableID: "T2", Title: "Ship release", Done: true, Due: "2026-09-01"}, tasks[1])
		assert.Equal(t, domain.Task{Title: "Water plants"}, tasks[2])
		assert.False(t, tasks[2].Synced())
	})

	t.Run("uppercase checkmark", func(t *testing.T) {
		t.Parallel()
		_, tasks := markdown.Parse("- [X] Done thing\n")
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].Done)
	})

	t.Run("empty title degrades to untitled", func(t *testing.T) {
		t.Parallel()
		_, tasks := markdown.Parse("- [ ]  %%id:T9%%\n")
		require.Len(t, tasks, 1)
		assert.Equal(t, markdown.UntitledTitle, tasks[0].Title)
		assert.Equal(t, "T9", tasks[0].StableID)
	})

	t.Run("prose is not a task", func(t *testing.T) {
		t.Parallel()
		_, tasks := markdown.Parse("some notes\n* different list\n-[ ] not a checkbox\n")
		assert.Empty(t, tasks)
	})
}

func TestRender_RoundTrip(t *testing.T) {
	t.Parallel()

	// render(parse(x)) == x for codec-produced text.
	text := "# Week 35\n" +
		"\n" +
		"Some prose the codec must never touch.\n" +
		"\n" +
		"- [ ] Buy milk %%id:T1%%\n" +
		"- [x] Ship release (due 2026-09-01) %%id:T2%%\n" +
		"- [ ] Water plants\n" +
		"\n" +
		"Trailing notes.\n"

	doc, tasks := markdown.Parse(text)
	assert.Equal(t, text, doc.Render(tasks))
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("updates matched lines in place", func(t *testing.T) {
		t.Parallel()
		doc, tasks := markdown.Parse("- [ ] Buy milk %%id:T1%%\nprose\n")
		tasks[0].Done = true

		got := doc.Render(tasks)
		assert.Equal(t, "- [x] Buy milk %%id:T1%%\nprose\n", got)
	})

	t.Run("line without marker gains id after sync", func(t *testing.T) {
		t.Parallel()
		doc, tasks := markdown.Parse("- [ ] Buy milk\n")
		tasks[0].StableID = "T1"

		got := doc.Render(tasks)
		assert.Equal(t, "- [ ] Buy milk %%id:T1%%\n", got)
	})

	t.Run("new tasks append after the task list", func(t *testing.T) {
		t.Parallel()
		doc, tasks := markdown.Parse("## Open Tasks\n\n- [ ] Buy milk %%id:T1%%\n\nfooter\n")
		tasks = append(tasks, domain.Task{StableID: "T2", Title: "New remote task"})

		got := doc.Render(tasks)
		assert.Equal(t, "## Open Tasks\n\n- [ ] Buy milk %%id:T1%%\n- [ ] New remote task %%id:T2%%\n\nfooter\n", got)
	})

	t.Run("normalizes hand-edited marker only", func(t *testing.T) {
		t.Parallel()
		doc, tasks := markdown.Parse("- [X] Done thing %%id:T3%%\nhand-written   prose stays put\n")
		got := doc.Render(tasks)
		assert.Equal(t, "- [x] Done thing %%id:T3%%\nhand-written   prose stays put\n", got)
	})
}

func TestRenderNew(t *testing.T) {
	t.Parallel()

	got := markdown.RenderNew([]domain.Task{
		{StableID: "T1", Title: "Buy milk", Due: "2026-09-01"},
	})
	want := "## Open Tasks\n\n- [ ] Buy milk (due 2026-09-01) %%id:T1%%\n"
	assert.Equal(t, want, got)

	// A fresh note must survive its own round trip.
	doc, tasks := markdown.Parse(got)
	assert.Equal(t, got, doc.Render(tasks))
}
