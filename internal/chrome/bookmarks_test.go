package chrome

import (
	"reflect"
	"testing"
)

func TestMaterializeEmptyFolderYieldsNothing(t *testing.T) {
	nodes := Materialize([]Folder{{}})
	if len(nodes) != 0 {
		t.Errorf("Materialize([{}]) = %v, want no nodes", nodes)
	}
}

func TestMaterializeSingleEntryFolderYieldsLeaf(t *testing.T) {
	nodes := Materialize([]Folder{{{Label: "A", URL: "u1"}}})
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	n := nodes[0]
	if !n.IsLeaf() {
		t.Error("single-entry folder produced a group, want a leaf")
	}
	if n.Title != "A" || n.URL != "u1" {
		t.Errorf("leaf = (%q, %q), want (A, u1)", n.Title, n.URL)
	}
}

func TestMaterializeMultiEntryFolderConsumesFirstEntryAsTitle(t *testing.T) {
	nodes := Materialize([]Folder{{
		{Label: "G", URL: ""},
		{Label: "B", URL: "u2"},
		{Label: "C", URL: "u3"},
	}})
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}

	g := nodes[0]
	if g.IsLeaf() {
		t.Fatal("multi-entry folder produced a leaf, want a group")
	}
	if g.Title != "G" {
		t.Errorf("group title = %q, want G", g.Title)
	}

	want := []MenuNode{{Title: "B", URL: "u2"}, {Title: "C", URL: "u3"}}
	if !reflect.DeepEqual(g.Items, want) {
		t.Errorf("group items = %v, want %v", g.Items, want)
	}
}

func TestMaterializePreservesFolderOrder(t *testing.T) {
	nodes := Materialize([]Folder{
		{{Label: "first", URL: "1"}},
		{},
		{{Label: "grp", URL: ""}, {Label: "a", URL: "2"}, {Label: "b", URL: "3"}},
		{{Label: "last", URL: "4"}},
	})

	titles := make([]string, len(nodes))
	for i, n := range nodes {
		titles[i] = n.Title
	}
	want := []string{"first", "grp", "last"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("node order = %v, want %v", titles, want)
	}
}

func TestMaterializeTwoEntryFolderHasOneChild(t *testing.T) {
	// The first entry of a two-entry folder titles the group, so only one
	// selectable item remains.
	nodes := Materialize([]Folder{{
		{Label: "Work", URL: "https://ignored.example"},
		{Label: "Mail", URL: "https://mail.example"},
	}})
	if len(nodes) != 1 || len(nodes[0].Items) != 1 {
		t.Fatalf("nodes = %v, want one group with one child", nodes)
	}
	if nodes[0].URL != "" {
		t.Errorf("group URL = %q, want empty (title entry URL is dropped)", nodes[0].URL)
	}
}
