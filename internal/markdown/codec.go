// Package markdown parses and renders the checkbox task list inside a note.
//
// The codec is pure and byte-stable: any line it does not recognize as a
// checkbox task is re-emitted verbatim in its original position, and
// rendering a parsed document with unchanged tasks reproduces the input
// exactly. Hand-edited checkbox lines are normalized only in their checkbox
// and marker tokens, never in the surrounding prose.
package markdown

import (
	"regexp"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
)

// UntitledTitle replaces an empty title on a checkbox line. A malformed line
// degrades to a best-effort record instead of failing the parse.
const UntitledTitle = "(untitled)"

// Heading is the section heading used when rendering a fresh note.
const Heading = "## Open Tasks"

var (
	// checkboxRe matches "- [ ] title" and "- [x] title" lines. The marker
	// is case-insensitive on parse and normalized to lowercase on render.
	checkboxRe = regexp.MustCompile(`^- \[([ xX])\] ?(.*)$`)

	// dueRe matches the trailing inline due marker "(due YYYY-MM-DD)".
	dueRe = regexp.MustCompile(`\s*\(due (\d{4}-\d{2}-\d{2})\)\s*$`)

	// idRe matches the trailing hidden identifier marker "%%id:...%%",
	// written in comment syntax so note viewers do not display it.
	idRe = regexp.MustCompile(`\s*%%id:([^%]+)%%\s*$`)
)

// slot is one line of the original note. Task slots remember what they
// parsed so Render can match them back to reconciled records.
type slot struct {
	raw    string
	isTask bool
	id     string
	title  string
}

// Document preserves the full line structure of a parsed note, including
// all free-form content around the task list.
type Document struct {
	slots []slot
}

// Parse scans the note text and returns the document structure together with
// the task records found, in line order. Records without a recoverable
// identifier marker are local-only and unsynced.
func Parse(text string) (*Document, []domain.Task) {
	lines := strings.Split(text, "\n")
	doc := &Document{slots: make([]slot, 0, len(lines))}
	var tasks []domain.Task

	for _, raw := range lines {
		m := checkboxRe.FindStringSubmatch(raw)
		if m == nil {
			doc.slots = append(doc.slots, slot{raw: raw})
			continue
		}

		task := parseTaskLine(m[1], m[2])
		doc.slots = append(doc.slots, slot{
			raw:    raw,
			isTask: true,
			id:     task.StableID,
			title:  task.Title,
		})
		tasks = append(tasks, task)
	}

	return doc, tasks
}

// parseTaskLine extracts a task record from a matched checkbox line.
// Markers are stripped innermost-last: the ID marker is always the final
// token, the due marker sits before it.
func parseTaskLine(mark, rest string) domain.Task {
	task := domain.Task{Done: mark == "x" || mark == "X"}

	if m := idRe.FindStringSubmatch(rest); m != nil {
		task.StableID = strings.TrimSpace(m[1])
		rest = rest[:len(rest)-len(m[0])]
	}
	if m := dueRe.FindStringSubmatch(rest); m != nil {
		task.Due = m[1]
		rest = rest[:len(rest)-len(m[0])]
	}

	task.Title = strings.TrimSpace(rest)
	if task.Title == "" {
		task.Title = UntitledTitle
	}
	return task
}

// RenderLine renders the canonical checkbox line for a task.
func RenderLine(t domain.Task) string {
	var b strings.Builder
	if t.Done {
		b.WriteString("- [x] ")
	} else {
		b.WriteString("- [ ] ")
	}
	b.WriteString(t.Title)
	if t.Due != "" {
		b.WriteString(" (due ")
		b.WriteString(t.Due)
		b.WriteString(")")
	}
	if t.StableID != "" {
		b.WriteString(" %%id:")
		b.WriteString(t.StableID)
		b.WriteString("%%")
	}
	return b.String()
}

// Render emits the note text for the given reconciled task set. Tasks are
// matched back to their original lines by stable ID, falling back to title
// for lines that had no identifier marker (a task that just gained its ID
// via a remote create still replaces its original line). Tasks with no
// originating line are appended after the last task line.
func (d *Document) Render(tasks []domain.Task) string {
	consumed := make([]bool, len(tasks))

	find := func(s slot) (domain.Task, bool) {
		for i, t := range tasks {
			if consumed[i] {
				continue
			}
			if s.id != "" && t.StableID == s.id {
				consumed[i] = true
				return t, true
			}
		}
		if s.id != "" {
			return domain.Task{}, false
		}
		for i, t := range tasks {
			if !consumed[i] && t.Title == s.title {
				consumed[i] = true
				return t, true
			}
		}
		return domain.Task{}, false
	}

	lines := make([]string, 0, len(d.slots)+len(tasks))
	lastTaskLine := -1
	for _, s := range d.slots {
		if !s.isTask {
			lines = append(lines, s.raw)
			continue
		}
		if t, ok := find(s); ok {
			lines = append(lines, RenderLine(t))
		} else {
			// The record vanished from the set; keep the line untouched
			// rather than silently dropping user content.
			lines = append(lines, s.raw)
		}
		lastTaskLine = len(lines) - 1
	}

	var extra []string
	for i, t := range tasks {
		if !consumed[i] {
			extra = append(extra, RenderLine(t))
		}
	}

	if len(extra) > 0 {
		at := lastTaskLine + 1
		if lastTaskLine == -1 {
			// No task list yet: append at the end, before a trailing blank
			// line if the file ends with one.
			at = len(lines)
			if at > 0 && lines[at-1] == "" {
				at--
			}
		}
		lines = append(lines[:at], append(extra, lines[at:]...)...)
	}

	return strings.Join(lines, "\n")
}

// RenderNew renders a fresh note for a vault that has no note file yet.
func RenderNew(tasks []domain.Task) string {
	lines := make([]string, 0, len(tasks)+3)
	lines = append(lines, Heading, "")
	for _, t := range tasks {
		lines = append(lines, RenderLine(t))
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
