//go:build !android && !ios

package globalshortcut

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appshell/internal/appcontext"
	"appshell/internal/ipc"
	"appshell/internal/logger"
	"appshell/internal/plugin"
)

func initPlugin(t *testing.T) (*Plugin, *plugin.Host) {
	t.Helper()

	appCtx := &appcontext.Context{
		Capabilities: appcontext.Capabilities{Permissions: []string{"globalshortcut:*"}},
	}
	log := logger.NewJSON(io.Discard, logger.ErrorLevel)
	host := &plugin.Host{
		App:      test.NewApp(),
		Window:   test.NewWindow(nil),
		Commands: ipc.NewDispatcher(appCtx, log),
		Events:   ipc.NewBus(),
		Context:  appCtx,
		Log:      log,
	}

	p := New()
	require.NoError(t, p.Init(host))
	return p, host
}

func TestRegisterTracksCanonicalForm(t *testing.T) {
	p, _ := initPlugin(t)

	require.NoError(t, p.Register("shift+ctrl+p", func() {}))
	assert.Equal(t, []string{"Ctrl+Shift+P"}, p.Registered())

	// Same accelerator in another spelling replaces, not duplicates.
	require.NoError(t, p.Register("Ctrl+Shift+P", func() {}))
	assert.Equal(t, []string{"Ctrl+Shift+P"}, p.Registered())
}

func TestUnregister(t *testing.T) {
	p, _ := initPlugin(t)

	require.NoError(t, p.Register("ctrl+k", func() {}))
	require.NoError(t, p.Unregister("CTRL+K"))
	assert.Empty(t, p.Registered())

	assert.Error(t, p.Unregister("ctrl+k"))
}

func TestShutdownClearsShortcuts(t *testing.T) {
	p, _ := initPlugin(t)

	require.NoError(t, p.Register("ctrl+1", func() {}))
	require.NoError(t, p.Register("ctrl+2", func() {}))
	p.Shutdown()
	assert.Empty(t, p.Registered())
}

func TestRegisterCommandEmitsEventOnTrigger(t *testing.T) {
	p, host := initPlugin(t)

	got, err := host.Commands.Invoke(context.Background(), "globalshortcut:register",
		json.RawMessage(`{"accelerator":"super+k"}`))
	require.NoError(t, err)
	assert.Equal(t, "Super+K", got)
	assert.Equal(t, []string{"Super+K"}, p.Registered())

	_, err = host.Commands.Invoke(context.Background(), "globalshortcut:unregister",
		json.RawMessage(`{"accelerator":"super+k"}`))
	require.NoError(t, err)
	assert.Empty(t, p.Registered())
}

func TestRegisterCommandRejectsBadAccelerator(t *testing.T) {
	_, host := initPlugin(t)

	_, err := host.Commands.Invoke(context.Background(), "globalshortcut:register",
		json.RawMessage(`{"accelerator":"nope"}`))
	assert.Error(t, err)
}
