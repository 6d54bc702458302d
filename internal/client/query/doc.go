// Package query caches server-derived resources by logical key.
//
// A Query wraps a zero-argument fetch function. Concurrent reads of the same
// key share one in-flight fetch, and successful results are served from the
// cache until the key is invalidated. Invalidation marks entries stale and
// refetches only the keys that currently have subscribers.
//
// Every entry carries a generation counter. Invalidate bumps it, and a fetch
// result is stored only if the generation it started under is still current,
// so a slow response issued before an invalidation never overwrites a newer one.
//
// A Mutation wraps a state-changing call, exposes its pending/error state and
// runs caller-supplied callbacks. Failures are surfaced, never retried.
package query
