// Package resilience groups the fault tolerance helpers used around the
// database: a gobreaker-backed circuit breaker that wraps the connection pool
// handed to repositories, and retry with exponential backoff for establishing
// the initial connection.
//
//	conn := circuitbreaker.WrapDB(sqlDB, circuitbreaker.DBConfig())
//	err := retry.WithBackoff(ctx, retry.StartupConfig(), func() error {
//	    return sqlDB.PingContext(ctx)
//	})
package resilience
