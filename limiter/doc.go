// Package limiter provides in-process rate limiters whose per-key state
// lives in a bounded cache, so idle keys are evicted under memory pressure.
//
// Both limiters implement RateLimiter:
//
//	allowed := l.Hit(key)
//
// # Sliding window
//
// Window is configured with a set of {timeframe: limit} pairs. Each key owns
// one ring buffer of timestamps per timeframe (capacity limit+1, since a ring
// reserves one slot). A hit first drops timestamps older than
// now-timeframe from every buffer, then records now. If any buffer is
// already holding limit timestamps, the hit is denied.
//
// WindowMode chooses what a denied hit leaves behind:
//
//   - CheckThenCommit (default): nothing is recorded anywhere. A denied call
//     does not count against any window.
//   - CommitEach: buffers are filled in ascending timeframe order and the
//     first full one stops the loop, so shorter windows processed before the
//     failing one keep the timestamp of a call that was denied.
//
// # Decay score
//
// Decay reuses the decay cache's score as a leaky bucket: each hit adds one
// unit of load that halves every half-life. A hit is allowed while the
// resulting score is <= Limit.
//
// # Concurrency
//
// Window and Decay are not safe for concurrent use. Wrap them with Locked,
// or keep one limiter per goroutine.
package limiter
