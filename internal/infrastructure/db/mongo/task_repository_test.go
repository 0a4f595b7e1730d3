package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

func TestOwnerQuery_AlwaysScopedToOwner(t *testing.T) {
	query, _ := ownerQuery("u1", ports.TaskFilter{})
	if query["owner_id"] != "u1" {
		t.Fatalf("owner filter missing: %v", query)
	}
	if _, hasStatus := query["status"]; hasStatus {
		t.Fatalf("empty status must not appear in query: %v", query)
	}
}

func TestOwnerQuery_StatusFilter(t *testing.T) {
	query, _ := ownerQuery("u1", ports.TaskFilter{Status: domain.StatusCompleted})
	if query["status"] != "completed" {
		t.Fatalf("status filter not translated: %v", query)
	}
}

func TestOwnerQuery_DefaultSort(t *testing.T) {
	_, opts := ownerQuery("u1", ports.TaskFilter{})
	spec, ok := opts.Sort.(bson.D)
	if !ok || len(spec) != 1 {
		t.Fatalf("unexpected sort spec: %v", opts.Sort)
	}
	if spec[0].Key != "created_at" || spec[0].Value != 1 {
		t.Fatalf("expected created_at ascending when unset, got %v", spec)
	}
}

func TestOwnerQuery_SortDescending(t *testing.T) {
	_, opts := ownerQuery("u1", ports.TaskFilter{SortKey: ports.SortByDueDate, SortDescending: true})
	spec, ok := opts.Sort.(bson.D)
	if !ok || len(spec) != 1 {
		t.Fatalf("unexpected sort spec: %v", opts.Sort)
	}
	if spec[0].Key != "due_date" || spec[0].Value != -1 {
		t.Fatalf("expected due_date descending, got %v", spec)
	}
}
