// Package resilience groups the fault tolerance helpers used around the
// feed database.
//
//   - circuitbreaker: sony/gobreaker breakers and repository decorators that
//     fail fast while PostgreSQL is unavailable
//   - retry: exponential backoff with jitter for connecting at startup
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.RepositoryConfig())
//	articles := circuitbreaker.NewGuardedArticleRepository(postgres.NewArticleRepo(db), cb)
//
//	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    conn, err = db.Open(ctx, dsn)
//	    return err
//	})
package resilience
