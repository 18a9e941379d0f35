package idgen_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stellarburgers/burger/pkg/idgen"
)

func TestCounter(t *testing.T) {
	t.Run("it generates sequential identities with prefix", func(t *testing.T) {
		c := idgen.NewCounter("item-")
		for _, expected := range []string{"item-1", "item-2", "item-3"} {
			if got := c.Next(); got != expected {
				t.Errorf("unexpected id: %s (expected %s)", got, expected)
			}
		}
	})

	t.Run("it does not collide under concurrent use", func(t *testing.T) {
		c := idgen.NewCounter("")
		seen := sync.Map{}
		wg := sync.WaitGroup{}
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					if _, loaded := seen.LoadOrStore(c.Next(), struct{}{}); loaded {
						t.Error("duplicated id")
					}
				}
			}()
		}
		wg.Wait()
	})
}

func TestUUID(t *testing.T) {
	g := idgen.UUID()
	a, b := g.Next(), g.Next()
	if a == b {
		t.Errorf("same uuid is generated twice: %s", a)
	}
	for _, id := range []string{a, b} {
		u, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("not a uuid: %s", id)
		}
		if u.Version() != 4 {
			t.Errorf("not a version 4 uuid: %s", id)
		}
	}
}
