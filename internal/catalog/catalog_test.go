package catalog

import (
	"testing"
)

func TestCatalogOrder(t *testing.T) {
	want := []string{"ex-1", "ex-2", "ex-3", "ex-4"}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("All()[%d].ID = %q, want %q", i, all[i].ID, id)
		}
		if At(i).ID != id {
			t.Errorf("At(%d).ID = %q, want %q", i, At(i).ID, id)
		}
	}
}

func TestFirstExerciseStarterCode(t *testing.T) {
	ex := At(0)
	if ex.InitialHTML != "<div class=\"box\">\n  Ciao mondo!\n</div>" {
		t.Errorf("InitialHTML = %q", ex.InitialHTML)
	}
	if ex.InitialCSS != ".box {\n  \n}" {
		t.Errorf("InitialCSS = %q", ex.InitialCSS)
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	ex := At(0)
	ex.Concepts[0] = "mutated"
	ex.Title = "mutated"

	all := All()
	all[1].Concepts[0] = "mutated"

	if At(0).Concepts[0] == "mutated" || At(0).Title == "mutated" {
		t.Error("At() leaked a reference to catalog data")
	}
	if At(1).Concepts[0] == "mutated" {
		t.Error("All() leaked a reference to catalog data")
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		i    int
		want bool
	}{
		{-1, false},
		{0, true},
		{Len() - 1, true},
		{Len(), false},
	}
	for _, tt := range tests {
		if got := InRange(tt.i); got != tt.want {
			t.Errorf("InRange(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	At(Len())
}

func TestByID(t *testing.T) {
	ex, ok := ByID("ex-3")
	if !ok {
		t.Fatal("ByID(ex-3) not found")
	}
	if ex.Title != "Centrare gli elementi" {
		t.Errorf("Title = %q", ex.Title)
	}
	if IndexOf("ex-3") != 2 {
		t.Errorf("IndexOf(ex-3) = %d, want 2", IndexOf("ex-3"))
	}
	if _, ok := ByID("ex-99"); ok {
		t.Error("ByID(ex-99) should not be found")
	}
	if IndexOf("ex-99") != -1 {
		t.Error("IndexOf(ex-99) should be -1")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(All()); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}

	dup := []Exercise{{ID: "a"}, {ID: "b"}, {ID: "a"}}
	if err := Validate(dup); err == nil {
		t.Error("expected error for duplicate id")
	}

	empty := []Exercise{{ID: "a"}, {ID: ""}}
	if err := Validate(empty); err == nil {
		t.Error("expected error for empty id")
	}
}
