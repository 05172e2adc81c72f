// Package resilience holds the fault tolerance building blocks shared by the
// outbound clients: circuit breakers for feed fetching, article page fetching
// and the assistant providers, plus retry with exponential backoff and jitter.
//
// Typical wiring:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed(ctx, url)
//	})
//
//	err := retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
//	    return callProvider(ctx)
//	})
package resilience
