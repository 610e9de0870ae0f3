// Package bootstrap runs the promptprobe tools with a uniform lifecycle.
//
// It validates the typed configuration, initializes the logger, starts the
// registered components, and tears everything down again on exit.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.RegisterComponent(llm.NewComponent(adapter, false))
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return send(ctx, adapter)
//	})
//
// RunTask is used by the request-issuing tools: SIGINT and SIGTERM cancel the
// task context rather than exiting the process. Run blocks until a signal
// arrives and suits the mock provider.
package bootstrap
