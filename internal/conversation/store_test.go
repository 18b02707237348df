package conversation

import (
	"testing"
	"time"
)

func TestStoreAddGetDelete(t *testing.T) {
	st := NewStore()
	s := newSession()
	st.add(s)

	got, ok := st.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("Get = %v, %v", got, ok)
	}
	if _, ok := st.Get("missing"); ok {
		t.Fatal("unknown id must miss")
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d", st.Len())
	}
	if !st.Delete(s.ID) {
		t.Fatal("delete existing")
	}
	if st.Delete(s.ID) {
		t.Fatal("second delete must report false")
	}
	if st.Len() != 0 {
		t.Fatalf("Len after delete = %d", st.Len())
	}
}

func TestPurgeIdle(t *testing.T) {
	st := NewStore()
	stale := newSession()
	stale.lastActive = time.Now().UTC().Add(-2 * time.Hour)
	fresh := newSession()
	st.add(stale)
	st.add(fresh)

	if n := st.PurgeIdle(time.Hour); n != 1 {
		t.Fatalf("purged = %d, want 1", n)
	}
	if _, ok := st.Get(stale.ID); ok {
		t.Fatal("stale session should be gone")
	}
	if _, ok := st.Get(fresh.ID); !ok {
		t.Fatal("fresh session should survive")
	}
}
