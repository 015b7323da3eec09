package theme

import "testing"

func TestForMode(t *testing.T) {
	if got := ForMode(true); got.Name != "dark" {
		t.Errorf("ForMode(true) = %q", got.Name)
	}
	if got := ForMode(false); got.Name != "light" {
		t.Errorf("ForMode(false) = %q", got.Name)
	}
}

func TestResolveExplicitFamilyWins(t *testing.T) {
	name := "Go Mono"
	got := Resolve(&name, 0)
	if got.Name != "Go Mono" || !got.Mono {
		t.Errorf("Resolve = %+v, want Go Mono", got.Name)
	}
}

func TestResolveNilFallsBackToCycle(t *testing.T) {
	want := Families()[2].Name
	if got := Resolve(nil, 2); got.Name != want {
		t.Errorf("Resolve(nil, 2) = %q, want %q", got.Name, want)
	}
}

func TestResolveUnknownFamilyFallsBackToCycle(t *testing.T) {
	name := "Comic Sans"
	want := Families()[1].Name
	if got := Resolve(&name, 1); got.Name != want {
		t.Errorf("Resolve(unknown, 1) = %q, want %q", got.Name, want)
	}
}

func TestResolveCycleWraps(t *testing.T) {
	n := len(Families())
	if got := Resolve(nil, n+1); got.Name != Families()[1].Name {
		t.Errorf("cycle index did not wrap: %q", got.Name)
	}
	if got := Resolve(nil, -1); got.Name != Families()[n-1].Name {
		t.Errorf("negative index did not wrap: %q", got.Name)
	}
}

func TestFamiliesReturnsCopy(t *testing.T) {
	fams := Families()
	fams[0].Name = "mutated"
	if Families()[0].Name == "mutated" {
		t.Error("Families leaked internal slice")
	}
}

func TestFamilyNamesMatchCycleOrder(t *testing.T) {
	names := FamilyNames()
	fams := Families()
	if len(names) != len(fams) {
		t.Fatalf("len = %d, want %d", len(names), len(fams))
	}
	for i, f := range fams {
		if names[i] != f.Name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], f.Name)
		}
	}
}
