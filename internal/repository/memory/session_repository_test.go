package memory

import (
	"testing"

	"ai-code-debugger/pkg/store"
)

func TestWorkspaceRoundTrip(t *testing.T) {
	repo := NewWorkspaceRepository()

	if _, found := repo.Get("nobody"); found {
		t.Fatal("empty repository should not find anything")
	}

	repo.Save(&store.Workspace{ClientID: "c1", Code: "x = 1", Filename: "a.py"})

	ws, found := repo.Get("c1")
	if !found {
		t.Fatal("saved workspace not found")
	}
	if ws.Code != "x = 1" || ws.Filename != "a.py" {
		t.Errorf("workspace = %+v", ws)
	}

	repo.Delete("c1")
	if _, found := repo.Get("c1"); found {
		t.Error("workspace still present after delete")
	}
}
