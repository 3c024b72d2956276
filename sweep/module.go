package sweep

import (
	"context"
	"time"

	Logger "github.com/Luismorlan/dramachaser/utils/log"
)

const gracefulRetryDelay = 3 * time.Second

// Module is one long-running unit of the sweep engine.
type Module interface {
	// RunModule contains the customized logic of the module. It takes in a
	// context object by which its lifecycle is managed. Return error if
	// encountered any error during execution.
	RunModule(ctx context.Context) error

	// Shutdown cleans up any resource held by the module.
	Shutdown()

	// Return name of the Module. Uniquely identifies the module instance.
	Name() string
}

// RunModuleWithGracefulRestart restarts a module whenever it exits with an
// error, a clean exit ends the loop.
func RunModuleWithGracefulRestart(ctx context.Context, module Module) {
	for {
		err := module.RunModule(ctx)
		if err == nil {
			break
		}
		Logger.Log.Errorf(
			"module %s exited with error %v, restart in %v",
			module.Name(), err, gracefulRetryDelay)

		// Wait for a small amount of time and restart.
		time.Sleep(gracefulRetryDelay)
	}
}
