package locale

import (
	"testing"

	"geovision-backend/internal/inputs"
)

func TestParse(t *testing.T) {
	cases := map[string]Locale{
		"en":      EN,
		"zh":      ZH,
		"ZH-CN":   ZH,
		"zh-Hans": ZH,
		"fr":      EN,
		"":        EN,
	}
	for raw, want := range cases {
		if got := Parse(raw); got != want {
			t.Errorf("Parse(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestTablesAreComplete(t *testing.T) {
	for _, loc := range []Locale{EN, ZH} {
		table := For(loc)
		for _, c := range inputs.Categories() {
			if table.CategoryLabel(c) == "" {
				t.Errorf("%s: missing label for category %s", loc, c)
			}
		}
		if len(table.Modules) != 6 {
			t.Errorf("%s: modules = %d, want 6", loc, len(table.Modules))
		}
		for _, m := range table.Modules {
			if m.Label == "" || m.Description == "" {
				t.Errorf("%s: incomplete module %+v", loc, m)
			}
		}
		if table.Placeholder == "" || table.SystemInstruction == "" {
			t.Errorf("%s: placeholder or system instruction missing", loc)
		}
		if table.GenericFailure == "" || table.NotConfiguredError == "" {
			t.Errorf("%s: failure messages missing", loc)
		}
	}
}

func TestModuleLabelsOrder(t *testing.T) {
	labels := For(EN).ModuleLabels()
	if len(labels) != 6 {
		t.Fatalf("labels = %d, want 6", len(labels))
	}
	if labels[1] != "Ore Petrography" {
		t.Errorf("labels[1] = %q, want Ore Petrography", labels[1])
	}
}
