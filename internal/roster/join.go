package roster

import "fmt"

// Join merges player records with supplemental records by normalized full
// name. It is a pure function of its inputs: no I/O, no logging, and
// deterministic output for identical inputs.
//
// Rules:
//   - Every well-formed player appears exactly once, in input order.
//   - A player with no matching supplement keeps empty supplemental fields
//     and MatchConfidence "unmatched"; it is never dropped.
//   - A supplement with no matching player is discarded.
//   - When several supplements share a normalized name, the first seen wins;
//     later duplicates are reported as warnings and ignored.
//   - A record missing its name is skipped with a warning, never aborting
//     the whole join.
//
// The second return value lists the skip/duplicate warnings.
func Join(players []PlayerRecord, supplements []SupplementalRecord) ([]UnifiedRecord, []string) {
	var warnings []string

	// Index supplements by normalized name, first seen wins.
	byName := make(map[string]SupplementalRecord, len(supplements))
	for i, sup := range supplements {
		key := NormalizeName(sup.Name)
		if key == "" {
			warnings = append(warnings, fmt.Sprintf("supplement %d: missing name, skipped", i))
			continue
		}
		if _, exists := byName[key]; exists {
			warnings = append(warnings, fmt.Sprintf("supplement %q: duplicate of earlier record, ignored", sup.Name))
			continue
		}
		byName[key] = sup
	}

	unified := make([]UnifiedRecord, 0, len(players))
	for i, player := range players {
		key := NormalizeName(player.Name)
		if key == "" {
			warnings = append(warnings, fmt.Sprintf("player %d (team %q): missing name, skipped", i, player.Team))
			continue
		}

		rec := UnifiedRecord{
			PlayerRecord:    player,
			MatchConfidence: MatchUnmatched,
		}

		if sup, ok := byName[key]; ok {
			rec.MatchConfidence = MatchExact
			rec.HometownCity = sup.HometownCity
			rec.HometownState = sup.HometownState
			rec.HighSchool = sup.HighSchool
			rec.College = sup.College
			rec.SourceURL = sup.SourceURL
			if sup.HometownCity != "" && sup.HometownState != "" {
				rec.Hometown = sup.HometownCity + ", " + sup.HometownState
			}
		}

		unified = append(unified, rec)
	}

	return unified, warnings
}
