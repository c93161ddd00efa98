// Package app implements the application layer for stitch.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.trai.ch/stitch/internal/adapters/llm"
	"go.trai.ch/stitch/internal/adapters/statefile"
	"go.trai.ch/stitch/internal/adapters/todoist"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/engine/apply"
	"go.trai.ch/stitch/internal/engine/reconcile"
	"go.trai.ch/stitch/internal/markdown"
	"go.trai.ch/stitch/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
//
// Adapters that need resolved configuration (the remote client, the
// snapshot store, the triage provider) are built per run through factory
// fields so tests can substitute them.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	notes        ports.NoteStore

	newRemote  func(token string) ports.RemoteClient
	newStore   func(path string, log ports.Logger) ports.SnapshotStore
	newTriager func(cfg domain.TriageConfig) (ports.Triager, error)

	stdout io.Writer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, notes ports.NoteStore) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		notes:        notes,
		newRemote: func(token string) ports.RemoteClient {
			return todoist.New(token)
		},
		newStore: func(path string, log ports.Logger) ports.SnapshotStore {
			return statefile.New(path, log)
		},
		newTriager: llm.New,
		stdout:     os.Stdout,
	}
}

// WithRemoteFactory overrides the remote client factory. Used for testing.
func (a *App) WithRemoteFactory(f func(token string) ports.RemoteClient) *App {
	a.newRemote = f
	return a
}

// WithStoreFactory overrides the snapshot store factory. Used for testing.
func (a *App) WithStoreFactory(f func(path string, log ports.Logger) ports.SnapshotStore) *App {
	a.newStore = f
	return a
}

// WithTriagerFactory overrides the triage provider factory. Used for testing.
func (a *App) WithTriagerFactory(f func(cfg domain.TriageConfig) (ports.Triager, error)) *App {
	a.newTriager = f
	return a
}

// WithStdout overrides the report destination. Used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// SyncOptions configuration for the Sync method.
type SyncOptions struct {
	// DryRun computes and prints the action list without applying it.
	DryRun bool
	// JSON switches log output to JSON.
	JSON bool
}

// Sync runs one full reconciliation pass: parse the note, list the remote
// tasks, diff against the last snapshot, apply, and report per-action
// outcomes. The run always completes; individual action failures are
// reported and surfaced through the returned error after the batch.
func (a *App) Sync(ctx context.Context, opts SyncOptions) error {
	if opts.JSON {
		if j, ok := a.logger.(interface{ SetJSON(bool) }); ok {
			j.SetJSON(true)
		}
	}

	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	noteText, err := a.notes.Read(cfg.NotePath())
	if err != nil {
		return err
	}
	var doc *markdown.Document
	var local []domain.Task
	if noteText != "" {
		doc, local = markdown.Parse(noteText)
	}

	remote := a.newRemote(cfg.RemoteToken)
	remoteTasks, err := remote.ListTasks(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to list remote tasks")
	}

	store := a.newStore(cfg.SnapshotPath(), a.logger)
	snap, err := store.Load()
	if err != nil {
		return err
	}

	actions, err := reconcile.Reconcile(remoteTasks, local, snap)
	if err != nil {
		return err
	}

	if opts.DryRun {
		a.printPlan(actions)
		return nil
	}

	applier := apply.New(remote, a.notes, store, a.logger)
	res, err := applier.Apply(ctx, actions, remoteTasks, snap, doc, cfg.NotePath())
	if err != nil {
		return err
	}

	a.printOutcomes(res)
	if failed := res.FailedCount(); failed > 0 {
		return zerr.With(zerr.Wrap(domain.ErrSyncFailed, ""), "failed", failed)
	}
	return nil
}

// Status prints the action list a sync would execute, with no side effects.
func (a *App) Status(ctx context.Context) error {
	return a.Sync(ctx, SyncOptions{DryRun: true})
}

// TriageOptions configuration for the Triage method.
type TriageOptions struct {
	// Model overrides the configured model name.
	Model string
	// Prompt replaces the default focus instruction.
	Prompt string
}

// Triage sends the open task list to the configured language model and
// prints its ranked, annotated response. The model gets a read-only view;
// triage never mutates tasks on either side.
func (a *App) Triage(ctx context.Context, opts TriageOptions) error {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Model != "" {
		cfg.Triage.Model = opts.Model
	}

	tasks, err := a.openTasks(ctx, cfg)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		a.logger.Info("no open tasks to triage")
		return nil
	}

	triager, err := a.newTriager(cfg.Triage)
	if err != nil {
		return err
	}

	text, err := triager.Complete(ctx, llm.BuildPrompt(tasks, opts.Prompt))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.stdout, text)
	return nil
}

// openTasks merges the remote open tasks with local-only unsynced lines so
// triage sees the same union a sync would.
func (a *App) openTasks(ctx context.Context, cfg *domain.Config) ([]domain.Task, error) {
	remote := a.newRemote(cfg.RemoteToken)
	remoteTasks, err := remote.ListTasks(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list remote tasks")
	}

	tasks := make([]domain.Task, 0, len(remoteTasks))
	for _, t := range remoteTasks {
		if !t.Done {
			tasks = append(tasks, t)
		}
	}

	noteText, err := a.notes.Read(cfg.NotePath())
	if err != nil {
		return nil, err
	}
	if noteText != "" {
		_, local := markdown.Parse(noteText)
		for _, t := range local {
			if !t.Synced() && !t.Done {
				tasks = append(tasks, t)
			}
		}
	}
	return tasks, nil
}

// printPlan writes the dry-run action list.
func (a *App) printPlan(actions []domain.Action) {
	mutations := 0
	for _, action := range actions {
		if !action.Mutates() {
			continue
		}
		mutations++
		_, _ = fmt.Fprintf(a.stdout, "%s %-13s %s\n", style.Dot, action.Kind, describeTask(action.Task))
	}
	if mutations == 0 {
		_, _ = fmt.Fprintln(a.stdout, "everything in sync")
		return
	}
	_, _ = fmt.Fprintf(a.stdout, "%d action(s) pending\n", mutations)
}

// printOutcomes writes the per-action outcome report.
func (a *App) printOutcomes(res apply.Result) {
	applied := 0
	for _, o := range res.Outcomes {
		if !o.Action.Mutates() {
			continue
		}
		if o.Failed() {
			_, _ = fmt.Fprintf(a.stdout, "%s %-13s %s: %v\n", style.Cross, o.Action.Kind, describeTask(o.Action.Task), o.Err)
			continue
		}
		applied++
		_, _ = fmt.Fprintf(a.stdout, "%s %-13s %s\n", style.Check, o.Action.Kind, describeTask(o.Action.Task))
	}
	if applied == 0 && res.FailedCount() == 0 {
		_, _ = fmt.Fprintln(a.stdout, "everything in sync")
		return
	}
	_, _ = fmt.Fprintf(a.stdout, "%d applied, %d failed\n", applied, res.FailedCount())
}

// describeTask renders a task for the outcome report.
func describeTask(t domain.Task) string {
	s := t.Title
	if t.Due != "" {
		s += " (due " + t.Due + ")"
	}
	return s
}
