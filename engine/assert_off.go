//go:build !flintdebug

// assert_off.go is the non-debug counterpart to assert.go: outside
// the flintdebug build tag, AssertConsistent compiles to nothing so
// release builds pay no cost for the invariant checks.

package engine

// AssertConsistent is a no-op outside flintdebug builds.
func AssertConsistent(pos *Position) {}
