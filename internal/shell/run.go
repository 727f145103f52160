package shell

import (
	"os"

	"appshell/internal/appcontext"
	"appshell/internal/logger"
)

// Run is the application bootstrap: load the generated context, register
// the default capability plugins and hand the calling thread to the event
// loop. The caller treats any returned error as fatal; there is no
// recovery path from a failed start.
func Run() error {
	log := logger.FromEnv()

	appCtx, err := loadContext()
	if err != nil {
		return err
	}

	builder := New(appCtx, log)
	for _, p := range DefaultPlugins() {
		builder.Plugin(p)
	}

	application, err := builder.Build()
	if err != nil {
		return err
	}
	return application.Run()
}

// loadContext uses the embedded context unless SHELL_DEV_CONF points at an
// override file, which is how dev runs enable the dev server.
func loadContext() (*appcontext.Context, error) {
	if path := os.Getenv("SHELL_DEV_CONF"); path != "" {
		return appcontext.LoadFile(path)
	}
	return appcontext.Load()
}
