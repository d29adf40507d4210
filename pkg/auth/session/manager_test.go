package session

import (
	"context"
	"testing"

	"github.com/angelmondragon/novastore/pkg/enums"
	"github.com/angelmondragon/novastore/pkg/kv"
)

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	mgr, err := NewManager(store)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	p, err := mgr.Current(ctx)
	if err != nil || p != nil {
		t.Fatalf("expected guest on empty store, got %+v %v", p, err)
	}

	want := Principal{UserID: "u1", Name: "ana", Email: "ana@example.com", Role: enums.RoleSeller}
	if err := mgr.Establish(ctx, want); err != nil {
		t.Fatalf("establish: %v", err)
	}
	p, err = mgr.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if p == nil || *p != want {
		t.Fatalf("unexpected principal %+v", p)
	}
	if !p.IsSeller() {
		t.Fatal("expected seller principal")
	}

	if err := mgr.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if p, _ := mgr.Current(ctx); p != nil {
		t.Fatalf("expected guest after clear, got %+v", p)
	}
	// clearing twice is fine
	if err := mgr.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCurrentTreatsCorruptDataAsGuest(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"garbage":       `{not json`,
		"missing id":    `{"name":"x","role":"buyer"}`,
		"unknown role":  `{"id":"u1","role":"admin"}`,
		"wrong type":    `[1,2,3]`,
		"explicit null": `null`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			if err := store.Set(ctx, kv.KeySession, []byte(raw)); err != nil {
				t.Fatal(err)
			}
			mgr, _ := NewManager(store)
			p, err := mgr.Current(ctx)
			if err != nil || p != nil {
				t.Fatalf("expected guest, got %+v %v", p, err)
			}
		})
	}
}

func TestEstablishRequiresUserID(t *testing.T) {
	mgr, _ := NewManager(kv.NewMemoryStore())
	if err := mgr.Establish(context.Background(), Principal{Role: enums.RoleBuyer}); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewManager(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
	var nilPrincipal *Principal
	if nilPrincipal.IsSeller() {
		t.Fatal("nil principal is never a seller")
	}
}

func TestStageWritesOnlyOnCommit(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	mgr, err := NewManager(store)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	batch := kv.NewBatch()
	if err := mgr.Stage(batch, Principal{Name: "nobody"}); err == nil {
		t.Fatal("expected missing user id to be rejected")
	}
	if err := mgr.Stage(batch, Principal{UserID: "u1", Email: "a@b.c", Role: enums.RoleBuyer}); err != nil {
		t.Fatalf("stage: %v", err)
	}
	if p, _ := mgr.Current(ctx); p != nil {
		t.Fatalf("staged principal must not be visible before commit, got %+v", p)
	}

	if err := batch.Commit(ctx, store); err != nil {
		t.Fatalf("commit: %v", err)
	}
	p, err := mgr.Current(ctx)
	if err != nil || p == nil || p.UserID != "u1" {
		t.Fatalf("expected committed principal, got %+v %v", p, err)
	}
}
