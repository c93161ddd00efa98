package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/app"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestRun_ProviderFailure(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"sync"}, &stderr, func(context.Context) (*app.Components, error) {
		return nil, zerr.New("wiring failed")
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "wiring failed")
}

func TestRun_Version(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	components := &app.Components{
		App:    app.New(mocks.NewMockConfigLoader(ctrl), mocks.NewMockLogger(ctrl), mocks.NewMockNoteStore(ctrl)),
		Logger: mocks.NewMockLogger(ctrl),
	}

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"version"}, &stderr, func(context.Context) (*app.Components, error) {
		return components, nil
	})
	assert.Equal(t, 0, code)
}

func TestRun_CommandError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(nil, zerr.New("no config"))

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any())

	components := &app.Components{
		App:    app.New(loader, logger, mocks.NewMockNoteStore(ctrl)),
		Logger: logger,
	}

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"sync"}, &stderr, func(context.Context) (*app.Components, error) {
		return components, nil
	})
	assert.Equal(t, 1, code)
}

func TestRun_SyncFailureIsSilent(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(&domain.Config{
		VaultPath:   "/vault",
		NoteFile:    "Open Tasks.md",
		RemoteToken: "token",
	}, nil)

	notes := mocks.NewMockNoteStore(ctrl)
	notes.EXPECT().Read("/vault/Open Tasks.md").Return("- [ ] Buy milk\n", nil)
	notes.EXPECT().Write("/vault/Open Tasks.md", gomock.Any()).Return(nil)

	remote := mocks.NewMockRemoteClient(ctrl)
	remote.EXPECT().ListTasks(gomock.Any()).Return(nil, nil)
	remote.EXPECT().CreateTask(gomock.Any(), "Buy milk", "").Return("", zerr.New("http 500"))

	store := mocks.NewMockSnapshotStore(ctrl)
	store.EXPECT().Load().Return(domain.Snapshot{}, nil)
	store.EXPECT().Save(gomock.Any()).Return(nil)

	// The Logger.Error expectation is deliberately absent: per-action
	// failures are already reported, so run must exit 1 without relogging.
	logger := mocks.NewMockLogger(ctrl)

	components := &app.Components{
		App:    app.New(loader, logger, notes),
		Logger: logger,
	}

	var stderr bytes.Buffer
	var out bytes.Buffer
	code := run(context.Background(), []string{"sync"}, &stderr,
		func(context.Context) (*app.Components, error) {
			return components, nil
		},
		func(a *app.App) {
			a.WithRemoteFactory(func(string) ports.RemoteClient { return remote })
			a.WithStoreFactory(func(string, ports.Logger) ports.SnapshotStore { return store })
			a.WithStdout(&out)
		},
	)

	require.Equal(t, 1, code)
	assert.Contains(t, out.String(), "0 applied, 1 failed")
}
