package app

import (
	"context"

	"github.com/olusolaa/hub-reconciler/internal/core/ports"
)

// Application runs the reconciliation engine and owns top-level logging.
type Application struct {
	Engine ports.ReconciliationEngine
	Logger ports.Logger
}

func NewApplication(engine ports.ReconciliationEngine, logger ports.Logger) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
	}
}

func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting hub response reconciliation...")

	err := a.Engine.Run(ctx)

	if err != nil {
		a.Logger.Errorf(ctx, err, "Reconciliation failed")
		return err
	}

	a.Logger.Infof(ctx, "Reconciliation completed successfully")
	return nil
}
