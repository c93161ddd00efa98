package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateStableID is returned when the same stable ID appears twice
	// on one side of a reconciliation pass.
	ErrDuplicateStableID = zerr.New("duplicate stable id")

	// ErrRemoteRequestFailed is returned when a remote service call fails.
	ErrRemoteRequestFailed = zerr.New("remote request failed")

	// ErrRemoteStatus is returned when the remote service answers with a
	// non-success status code.
	ErrRemoteStatus = zerr.New("unexpected remote status")

	// ErrRemoteDecodeFailed is returned when a remote response body cannot be
	// decoded.
	ErrRemoteDecodeFailed = zerr.New("failed to decode remote response")

	// ErrSnapshotReadFailed is returned when the snapshot file cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read sync snapshot")

	// ErrSnapshotMarshalFailed is returned when the snapshot cannot be marshaled.
	ErrSnapshotMarshalFailed = zerr.New("failed to marshal sync snapshot")

	// ErrSnapshotWriteFailed is returned when the snapshot cannot be written.
	ErrSnapshotWriteFailed = zerr.New("failed to write sync snapshot")

	// ErrNoteReadFailed is returned when the note file cannot be read.
	ErrNoteReadFailed = zerr.New("failed to read note")

	// ErrNoteWriteFailed is returned when the note file cannot be written.
	ErrNoteWriteFailed = zerr.New("failed to write note")

	// ErrConfigNotFound is returned when no stitch.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find stitch.yaml")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingToken is returned when no remote API token is configured.
	ErrMissingToken = zerr.New("remote API token not configured")

	// ErrMissingAPIKey is returned when the selected triage provider has no
	// API key configured.
	ErrMissingAPIKey = zerr.New("triage API key not configured")

	// ErrUnknownProvider is returned when the configured triage provider is
	// not recognized.
	ErrUnknownProvider = zerr.New("unknown triage provider, expected 'openai' or 'anthropic'")

	// ErrTriageFailed is returned when the triage provider call fails.
	ErrTriageFailed = zerr.New("triage request failed")

	// ErrEmptyCompletion is returned when the triage provider returns no text.
	ErrEmptyCompletion = zerr.New("triage provider returned an empty completion")

	// ErrSyncFailed is returned when one or more actions in a sync pass failed.
	ErrSyncFailed = zerr.New("sync completed with failed actions")
)
