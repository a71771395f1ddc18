package buildinfo

import "testing"

func TestCurrent(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	if got := Current(); got.Version != "v1.2.3" || got.Commit != Commit || got.Date != Date {
		t.Errorf("Current() = %+v", got)
	}
	if want := "version: v1.2.3\ncommit: " + Commit + "\nbuilt: " + Date; String() != want {
		t.Errorf("String() = %q, want %q", String(), want)
	}
	if want := "{{.Name}} version v1.2.3\ncommit: " + Commit + "\nbuilt: " + Date + "\n"; Template() != want {
		t.Errorf("Template() = %q", Template())
	}
}
