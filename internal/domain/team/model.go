package team

import "fmt"

// Team is one NBA franchise as listed by the stats directory.
type Team struct {
	ID       string
	Nickname string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Nickname == "" {
		return fmt.Errorf("team nickname is required")
	}

	return nil
}

// Translator resolves the numeric team ids used by the historical feed into
// the display nicknames picks are stored under.
type Translator map[string]string

// BuildTranslator is pure: duplicate ids keep the last entry, teams without
// an id are skipped.
func BuildTranslator(teams []Team) Translator {
	tr := make(Translator, len(teams))
	for _, t := range teams {
		if t.ID == "" {
			continue
		}
		tr[t.ID] = t.Nickname
	}
	return tr
}

// Resolve reports the nickname for an id; ok is false when the directory
// never listed it.
func (tr Translator) Resolve(id string) (string, bool) {
	name, ok := tr[id]
	return name, ok
}
