package team

import "testing"

func TestBuildTranslator(t *testing.T) {
	t.Parallel()

	tr := BuildTranslator([]Team{
		{ID: "1610612747", Nickname: "Lakers"},
		{ID: "", Nickname: "Ghosts"},
		{ID: "1610612738", Nickname: "Boston"},
		{ID: "1610612738", Nickname: "Celtics"},
	})

	if len(tr) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tr))
	}
	if name, ok := tr.Resolve("1610612747"); !ok || name != "Lakers" {
		t.Fatalf("unexpected resolve: %q %v", name, ok)
	}
	if name, ok := tr.Resolve("1610612738"); !ok || name != "Celtics" {
		t.Fatalf("duplicate ids must keep the last entry, got %q", name)
	}
	if _, ok := tr.Resolve("0"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestTeamValidate(t *testing.T) {
	t.Parallel()

	if err := (Team{ID: "1610612747", Nickname: "Lakers"}).Validate(); err != nil {
		t.Fatalf("valid team rejected: %v", err)
	}
	if err := (Team{Nickname: "Lakers"}).Validate(); err == nil {
		t.Fatal("expected error for missing id")
	}
	if err := (Team{ID: "1610612747"}).Validate(); err == nil {
		t.Fatal("expected error for missing nickname")
	}
}
