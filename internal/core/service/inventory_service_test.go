package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/core/domain"
)

var actor = domain.User{ID: 42, Username: "clerk", Role: domain.RoleUser}

func newInventorySvc(repo *stubInventoryRepo) (*InventoryService, *recordingActivity) {
	activity := &recordingActivity{}
	return NewInventoryService(repo, activity, DefaultStockThresholds, zerolog.Nop()), activity
}

func TestInventoryService_Add(t *testing.T) {
	repo := newStubInventoryRepo()
	svc, activity := newInventorySvc(repo)

	id, err := svc.Add(context.Background(), actor, newItem("Widget", 3, "2.50", "Tools", "Acme"))
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if _, ok := repo.items[id]; !ok {
		t.Fatalf("item not stored")
	}
	adds := activity.ofType(domain.ActivityInventoryAdd)
	if len(adds) != 1 || adds[0].Description != "Added item: Widget (Qty: 3)" || adds[0].UserID != actor.ID {
		t.Fatalf("unexpected INVENTORY_ADD records: %+v", adds)
	}
	if adds[0].InventoryID == nil || *adds[0].InventoryID != id {
		t.Fatalf("expected inventory id on record")
	}
}

func TestInventoryService_Add_RequiresName(t *testing.T) {
	svc, activity := newInventorySvc(newStubInventoryRepo())

	if _, err := svc.Add(context.Background(), actor, newItem("  ", 1, "1", "", "")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(activity.records) != 0 {
		t.Fatalf("no activity expected")
	}
}

func TestInventoryService_Delete_Existing(t *testing.T) {
	repo := newStubInventoryRepo(newItem("Widget", 3, "2.50", "Tools", "Acme"), newItem("Gadget", 9, "1", "Tools", "Acme"))
	svc, activity := newInventorySvc(repo)

	if err := svc.Delete(context.Background(), actor, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected exactly one row removed, %d left", len(repo.items))
	}
	dels := activity.ofType(domain.ActivityInventoryDelete)
	if len(dels) != 1 || !strings.Contains(dels[0].Description, "Widget") {
		t.Fatalf("unexpected INVENTORY_DELETE records: %+v", dels)
	}
}

func TestInventoryService_Delete_Missing(t *testing.T) {
	svc, activity := newInventorySvc(newStubInventoryRepo())

	if err := svc.Delete(context.Background(), actor, 99); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if len(activity.records) != 0 {
		t.Fatalf("no activity expected, got %+v", activity.records)
	}
}

func TestInventoryService_Delete_StoreError(t *testing.T) {
	repo := newStubInventoryRepo(newItem("Widget", 3, "2.50", "Tools", "Acme"))
	repo.deleteErr = errors.New("db down")
	svc, activity := newInventorySvc(repo)

	err := svc.Delete(context.Background(), actor, 1)
	if err == nil || errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(activity.records) != 0 {
		t.Fatalf("no activity expected")
	}
}

func TestInventoryService_Notifications(t *testing.T) {
	repo := newStubInventoryRepo(
		newItem("Widget", 3, "2.50", "Tools", "Acme"),
		newItem("Bolt", 40, "0.10", "Hardware", "Fastco"),
		newItem("Nut", 10, "0.05", "Hardware", "Fastco"),
	)
	svc, _ := newInventorySvc(repo)

	n, err := svc.Notifications(context.Background())
	if err != nil {
		t.Fatalf("Notifications error: %v", err)
	}
	if len(n.LowStock) != 1 || n.LowStock[0].Name != "Widget" {
		t.Fatalf("unexpected low stock: %+v", n.LowStock)
	}
	if len(n.HighStock) != 1 || n.HighStock[0].Name != "Bolt" {
		t.Fatalf("unexpected high stock: %+v", n.HighStock)
	}
	if len(n.Suppliers) != 2 || len(n.Categories) != 2 {
		t.Fatalf("unexpected distinct lists: %v %v", n.Suppliers, n.Categories)
	}
}
