package session_test

import (
	"context"
	"testing"

	"github.com/jobport/jobport/internal/models"
	"github.com/jobport/jobport/internal/session"
)

func TestMemoryCell(t *testing.T) {
	ctx := context.Background()
	cell := session.NewMemory()

	u, err := cell.Get(ctx)
	if err != nil || u != nil {
		t.Fatalf("empty cell: got %v, %v", u, err)
	}

	alice := &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	if err := cell.Set(ctx, alice); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := cell.Get(ctx)
	if got == nil || got.ID != "u1" {
		t.Fatalf("get after set: %+v", got)
	}

	// Whole-object replacement, last writer wins.
	updated := &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com",
		Resume: &models.Resume{ID: "res_1", FileName: "alice.pdf"}}
	if err := cell.Set(ctx, updated); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ = cell.Get(ctx)
	if got.Resume == nil || got.Resume.ID != "res_1" {
		t.Fatalf("replacement not visible: %+v", got)
	}

	if err := cell.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := cell.Get(ctx); got != nil {
		t.Fatalf("cell not cleared: %+v", got)
	}
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	reg := session.NewRegistry()

	if _, ok := reg.Cell("nope"); ok {
		t.Fatalf("unknown session should be absent")
	}

	if _, err := reg.Create(ctx, "sid-1", &models.User{ID: "u1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	cell, ok := reg.Cell("sid-1")
	if !ok {
		t.Fatalf("session missing after create")
	}
	if u, _ := cell.Get(ctx); u == nil || u.ID != "u1" {
		t.Fatalf("cell holds %+v", u)
	}

	reg.Delete("sid-1")
	if _, ok := reg.Cell("sid-1"); ok {
		t.Fatalf("session should be gone after delete")
	}
}
