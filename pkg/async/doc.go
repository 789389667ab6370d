// Package async provides a minimal generic Future used to run blocking work,
// such as an activation-time evaluation fetch, in the background.
//
// Go starts the supplied function in its own goroutine and immediately returns
// a *Future. Callers wait with Await, AwaitContext or AwaitWithTimeout, select
// on Done, or poll with IsComplete.
//
// # Usage
//
//	future := async.Go(ctx, func(ctx context.Context) (int, error) {
//	    return fetchSomething(ctx)
//	})
//	// ... do other work ...
//	n, err := future.AwaitWithTimeout(5 * time.Second)
package async
