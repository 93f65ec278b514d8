// Package resilience groups the fault tolerance helpers used by the scheduled importer.
//
// The subpackages provide:
//   - circuitbreaker: gobreaker wrappers for import runs and database probes
//   - retry: exponential backoff with jitter for transient storage failures
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ImportConfig())
//	n, err := circuitbreaker.Do(cb, func() (int, error) {
//	    return svc.Run(ctx, importer.ModeImport, path, "")
//	})
//
//	err = retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
