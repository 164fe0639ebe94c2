package store

import (
	"fmt"
	"testing"

	"github.com/iov-one/swap/swaptest/assert"
)

// Opener returns a fresh, empty store and a function releasing it.
type Opener func() (CacheableKVStore, func())

// RunConformance checks that a cacheable store behaves the way the
// application relies on: cache layers are isolated until written, a
// discarded layer leaves no trace and iteration merges all layers in key
// order. Store packages call it from their own tests.
func RunConformance(t *testing.T, open Opener) {
	t.Run("layers", func(t *testing.T) { conformLayers(t, open) })
	t.Run("overrides", func(t *testing.T) { conformOverrides(t, open) })
	t.Run("merged iteration", func(t *testing.T) { conformMergedIteration(t, open) })
	t.Run("bounds", func(t *testing.T) { conformBounds(t, open) })
}

// mutation changes a store, it is applied to a parent or a child layer.
type mutation func(SetDeleter) error

func put(key, value string) mutation {
	return func(db SetDeleter) error { return db.Set([]byte(key), []byte(value)) }
}

func del(key string) mutation {
	return func(db SetDeleter) error { return db.Delete([]byte(key)) }
}

func apply(t testing.TB, db SetDeleter, ms []mutation) {
	t.Helper()
	for _, m := range ms {
		assert.Nil(t, m(db))
	}
}

// expect checks the value under key. An empty want means the key must be
// absent.
func expect(t testing.TB, db ReadOnlyKVStore, key, want string) {
	t.Helper()
	got, err := db.Get([]byte(key))
	assert.Nil(t, err)
	has, err := db.Has([]byte(key))
	assert.Nil(t, err)
	if want == "" {
		if got != nil || has {
			t.Fatalf("want %q absent, got %q", key, got)
		}
		return
	}
	if string(got) != want || !has {
		t.Fatalf("want %q under %q, got %q (has %v)", want, key, got, has)
	}
}

func conformLayers(t *testing.T, open Opener) {
	base, release := open()
	defer release()

	expect(t, base, "offer:1", "")
	apply(t, base, []mutation{put("offer:1", "open")})
	expect(t, base, "offer:1", "open")

	// A written child shows up in the parent.
	child := base.CacheWrap()
	expect(t, child, "offer:1", "open")
	apply(t, child, []mutation{put("offer:2", "open")})
	expect(t, base, "offer:2", "")
	assert.Nil(t, child.Write())
	expect(t, base, "offer:2", "open")

	// A discarded child leaves nothing behind.
	failed := base.CacheWrap()
	apply(t, failed, []mutation{put("offer:3", "open"), del("offer:1")})
	expect(t, failed, "offer:1", "")
	failed.Discard()
	expect(t, base, "offer:1", "open")
	expect(t, base, "offer:3", "")

	// Layers nest, a grandchild reaches the base only through its parent.
	child = base.CacheWrap()
	grandchild := child.CacheWrap()
	apply(t, grandchild, []mutation{del("offer:1")})
	assert.Nil(t, grandchild.Write())
	expect(t, child, "offer:1", "")
	expect(t, base, "offer:1", "open")
	assert.Nil(t, child.Write())
	expect(t, base, "offer:1", "")
	expect(t, base, "offer:2", "open")
}

func conformOverrides(t *testing.T, open Opener) {
	cases := map[string]struct {
		parent     []mutation
		child      []mutation
		wantParent map[string]string
		wantChild  map[string]string
	}{
		"settle one offer, cancel another, open a third": {
			parent:     []mutation{put("offer:a", "open"), put("offer:b", "open")},
			child:      []mutation{put("offer:a", "filled"), del("offer:b"), put("offer:c", "open")},
			wantParent: map[string]string{"offer:a": "open", "offer:b": "open", "offer:c": ""},
			wantChild:  map[string]string{"offer:a": "filled", "offer:b": "", "offer:c": "open"},
		},
		"reuse a cancelled id": {
			parent:     []mutation{put("offer:a", "open")},
			child:      []mutation{del("offer:a"), put("offer:a", "reopened")},
			wantParent: map[string]string{"offer:a": "open"},
			wantChild:  map[string]string{"offer:a": "reopened"},
		},
		"delete a missing key": {
			child:      []mutation{del("offer:x")},
			wantParent: map[string]string{"offer:x": ""},
			wantChild:  map[string]string{"offer:x": ""},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, release := open()
			defer release()

			apply(t, parent, tc.parent)
			child := parent.CacheWrap()
			apply(t, child, tc.child)

			for k, v := range tc.wantParent {
				expect(t, parent, k, v)
			}
			for k, v := range tc.wantChild {
				expect(t, child, k, v)
			}
			assert.Nil(t, child.Write())
			for k, v := range tc.wantChild {
				expect(t, parent, k, v)
			}
		})
	}
}

// scan describes one iteration over a child layer and the key=value pairs
// it must return.
type scan struct {
	start, end string
	reverse    bool
	want       []string
}

func conformMergedIteration(t *testing.T, open Opener) {
	cases := map[string]struct {
		parent []mutation
		child  []mutation
		scans  []scan
	}{
		"child only": {
			child: []mutation{put("vault:a", "1"), put("vault:b", "2"), put("vault:c", "3")},
			scans: []scan{
				{want: []string{"vault:a=1", "vault:b=2", "vault:c=3"}},
				{start: "vault:b", end: "vault:c", want: []string{"vault:b=2"}},
				{reverse: true, want: []string{"vault:c=3", "vault:b=2", "vault:a=1"}},
			},
		},
		"parent only": {
			parent: []mutation{put("vault:a", "1"), put("vault:b", "2"), put("vault:c", "3")},
			scans: []scan{
				{start: "vault:b", want: []string{"vault:b=2", "vault:c=3"}},
				{end: "vault:c", reverse: true, want: []string{"vault:b=2", "vault:a=1"}},
			},
		},
		"interleaved layers": {
			parent: []mutation{put("vault:a", "1"), put("vault:c", "3")},
			child:  []mutation{put("vault:b", "2"), put("vault:d", "4")},
			scans: []scan{
				{want: []string{"vault:a=1", "vault:b=2", "vault:c=3", "vault:d=4"}},
				{reverse: true, start: "vault:b", end: "vault:d", want: []string{"vault:c=3", "vault:b=2"}},
			},
		},
		"child values win": {
			parent: []mutation{put("vault:a", "1"), put("vault:b", "2")},
			child:  []mutation{put("vault:a", "10"), put("vault:c", "30")},
			scans: []scan{
				{want: []string{"vault:a=10", "vault:b=2", "vault:c=30"}},
				{reverse: true, want: []string{"vault:c=30", "vault:b=2", "vault:a=10"}},
			},
		},
		"closed vaults are skipped": {
			parent: []mutation{put("vault:a", "1"), put("vault:c", "3"), put("vault:d", "4")},
			child:  []mutation{del("vault:a"), del("vault:b"), del("vault:d")},
			scans: []scan{
				{want: []string{"vault:c=3"}},
				{end: "vault:c", want: nil},
				{reverse: true, want: []string{"vault:c=3"}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, release := open()
			defer release()
			apply(t, parent, tc.parent)
			child := parent.CacheWrap()
			apply(t, child, tc.child)
			for _, s := range tc.scans {
				verifyScan(t, child, s)
			}
		})
	}
}

func conformBounds(t *testing.T, open Opener) {
	parent, release := open()
	defer release()
	child := parent.CacheWrap()

	const size = 30
	var all []string
	for i := 0; i < size; i++ {
		k, v := fmt.Sprintf("offer:%03d", i), fmt.Sprint(i)
		all = append(all, k+"="+v)
		// Even offers are committed, odd ones pending in the child.
		if i%2 == 0 {
			apply(t, parent, []mutation{put(k, v)})
		} else {
			apply(t, child, []mutation{put(k, v)})
		}
	}
	key := func(i int) string { return fmt.Sprintf("offer:%03d", i) }

	scans := []scan{
		{want: all},
		{start: key(7), want: all[7:]},
		{end: key(22), want: all[:22]},
		{start: key(11), end: key(19), want: all[11:19]},
		{reverse: true, want: reversed(all)},
		{reverse: true, start: key(25), want: reversed(all[25:])},
		{reverse: true, end: key(4), want: reversed(all[:4])},
		{reverse: true, start: key(3), end: key(20), want: reversed(all[3:20])},
		{start: key(40), want: nil},
	}
	for _, s := range scans {
		verifyScan(t, child, s)
	}
}

func verifyScan(t testing.TB, db ReadOnlyKVStore, s scan) {
	t.Helper()
	var start, end []byte
	if s.start != "" {
		start = []byte(s.start)
	}
	if s.end != "" {
		end = []byte(s.end)
	}

	var (
		it  Iterator
		err error
	)
	if s.reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	assert.Nil(t, err)
	defer it.Close()

	var got []string
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		got = append(got, string(it.Key())+"="+string(it.Value()))
	}
	if len(got) != len(s.want) {
		t.Fatalf("scan %+v: want %d results, got %v", s, len(s.want), got)
	}
	for i := range got {
		if got[i] != s.want[i] {
			t.Fatalf("scan %+v: want %q at %d, got %q", s, s.want[i], i, got[i])
		}
	}
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
