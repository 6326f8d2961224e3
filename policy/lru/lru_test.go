package lru

import (
	"reflect"
	"testing"

	"github.com/IvanBrykalov/hitcache/internal/chaintest"
	"github.com/IvanBrykalov/hitcache/policy"
)

// Attach should place each new entry right after Head.
func TestLRU_Attach_InsertsAtFront(t *testing.T) {
	t.Parallel()

	ch := chaintest.New()
	p := New().New(ch, &chaintest.Clock{})

	a, b, c := ch.Alloc(0), ch.Alloc(0), ch.Alloc(0)
	p.Attach(a)
	p.Attach(b)
	p.Attach(c)

	if got, want := ch.Order(), []policy.Ref{c, b, a}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

// Hit should promote the entry to MRU.
func TestLRU_Hit_MovesToFront(t *testing.T) {
	t.Parallel()

	ch := chaintest.New()
	p := New().New(ch, &chaintest.Clock{})

	a, b := ch.Alloc(0), ch.Alloc(0)
	p.Attach(a)
	p.Attach(b)
	p.Hit(a)

	if got, want := ch.Order(), []policy.Ref{a, b}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if ch.Prev(policy.Tail) != b {
		t.Fatalf("b must be the eviction candidate")
	}
}

// Hit on the current MRU must not relink.
func TestLRU_Hit_AlreadyFront_NoRelink(t *testing.T) {
	t.Parallel()

	ch := chaintest.New()
	p := New().New(ch, &chaintest.Clock{})

	a := ch.Alloc(0)
	p.Attach(a)
	p.Hit(a)

	if ch.Unlinks != 0 || ch.Inserts != 1 {
		t.Fatalf("expected no relink, got inserts=%d unlinks=%d", ch.Inserts, ch.Unlinks)
	}
}
