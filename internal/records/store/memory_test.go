package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

func makeRecords(prefix string, n int) []entity.Record {
	out := make([]entity.Record, 0, n)
	for i := range n {
		out = append(out, entity.Record{
			ID:    fmt.Sprintf("%s-%d", prefix, i),
			Name:  prefix,
			Email: fmt.Sprintf("%s%d@example.com", prefix, i),
		})
	}
	return out
}

func TestInMemoryStore_ReadEmpty(t *testing.T) {
	t.Parallel()

	got := NewInMemoryStore().Read(context.Background())
	if got == nil {
		t.Fatal("Read() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Fatalf("Read() len = %d, want 0", len(got))
	}
}

func TestInMemoryStore_ReplaceDiscardsPrevious(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	store.Replace(ctx, makeRecords("old", 5))
	want := makeRecords("new", 3)
	store.Replace(ctx, want)

	if got := store.Read(ctx); !reflect.DeepEqual(got, want) {
		t.Fatalf("Read() = %+v, want %+v", got, want)
	}

	store.Replace(ctx, nil)
	if got := store.Read(ctx); got == nil || len(got) != 0 {
		t.Fatalf("Read() after nil replace = %#v, want empty slice", got)
	}
}

func TestInMemoryStore_CallerCannotMutateSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	input := makeRecords("a", 2)
	store.Replace(ctx, input)
	input[0].Name = "changed after replace"

	snap := store.Read(ctx)
	snap[1].Name = "changed after read"

	got := store.Read(ctx)
	if got[0].Name != "a" || got[1].Name != "a" {
		t.Fatalf("store leaked caller mutations: %+v", got)
	}
}

func TestInMemoryStore_ConcurrentReadsSeeWholeSnapshots(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	old := makeRecords("old", 50)
	next := makeRecords("new", 30)
	store.Replace(ctx, old)

	var wg sync.WaitGroup
	errs := make(chan error, 64)

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				snap := store.Read(ctx)
				if !reflect.DeepEqual(snap, old) && !reflect.DeepEqual(snap, next) {
					errs <- fmt.Errorf("observed mixed snapshot of %d records", len(snap))
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 100 {
			if i%2 == 0 {
				store.Replace(ctx, next)
			} else {
				store.Replace(ctx, old)
			}
		}
	}()

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
