package moderation

import "testing"

func TestWarningIDAfterClearRestartsAtOne(t *testing.T) {
	ws, err := NewWarningStore(NewMemoryStore())
	if err != nil {
		t.Fatalf("NewWarningStore: %v", err)
	}

	a, _ := ws.Add("user", "mod", "spam")
	b, _ := ws.Add("user", "mod", "flood")
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}

	removed, err := ws.ClearFor("user")
	if err != nil {
		t.Fatalf("ClearFor: %v", err)
	}
	if removed != 2 {
		t.Errorf("ClearFor() = %d, want 2", removed)
	}

	// La colección quedó vacía: el siguiente id vuelve a 1, no continúa
	// desde el último máximo conocido.
	c, _ := ws.Add("user", "mod", "otra vez")
	if c.ID != 1 {
		t.Errorf("ID tras limpiar = %d, want 1", c.ID)
	}
}

func TestWarningIDToleratesPartialClear(t *testing.T) {
	ws, _ := NewWarningStore(NewMemoryStore())

	ws.Add("u1", "mod", "a")
	ws.Add("u2", "mod", "b")
	ws.Add("u2", "mod", "c")

	if _, err := ws.ClearFor("u1"); err != nil {
		t.Fatalf("ClearFor: %v", err)
	}

	// max existente es 3 (las advertencias de u2 siguen), así que toca el 4.
	w, _ := ws.Add("u1", "mod", "d")
	if w.ID != 4 {
		t.Errorf("ID = %d, want 4", w.ID)
	}
}

func TestListForInsertionOrder(t *testing.T) {
	ws, _ := NewWarningStore(NewMemoryStore())

	ws.Add("user", "mod", "primera")
	ws.Add("otro", "mod", "ajena")
	ws.Add("user", "mod", "segunda")

	list := ws.ListFor("user")
	if len(list) != 2 {
		t.Fatalf("ListFor() len = %d, want 2", len(list))
	}
	if list[0].Reason != "primera" || list[1].Reason != "segunda" {
		t.Errorf("orden incorrecto: %+v", list)
	}
}

func TestClearForNothingToRemove(t *testing.T) {
	ws, _ := NewWarningStore(NewMemoryStore())

	removed, err := ws.ClearFor("nadie")
	if err != nil {
		t.Fatalf("ClearFor: %v", err)
	}
	if removed != 0 {
		t.Errorf("ClearFor() = %d, want 0", removed)
	}
}

func TestWarningsSurviveRestart(t *testing.T) {
	store := NewMemoryStore()
	ws, _ := NewWarningStore(store)
	ws.Add("user", "mod", "spam")

	reloaded, err := NewWarningStore(store)
	if err != nil {
		t.Fatalf("NewWarningStore (reload): %v", err)
	}
	if list := reloaded.ListFor("user"); len(list) != 1 || list[0].Reason != "spam" {
		t.Errorf("tras recarga ListFor() = %+v", list)
	}
}
