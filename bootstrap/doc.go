// Package bootstrap provides the host application extensions attach to.
//
// App owns typed configuration, the settings lookup extensions read their
// URLs from and the extension registry. It drives component lifecycle,
// runs startup and shutdown hooks, and prints a startup summary.
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithSettings(settings))
//	if err != nil {
//	    return err
//	}
//	if _, err := redis.New(redis.WithApp(app)); err != nil {
//	    return err
//	}
//	return app.Run(ctx)
package bootstrap
