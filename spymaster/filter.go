package spymaster

import codenames "github.com/bcspragu/spymaster"

// FilterCandidates returns the normalized vocabulary, minus anything that's
// exactly a word on the board. Order is kept and repeated vocabulary entries
// are collapsed.
func FilterCandidates(vocab, board []string) []string {
	exclude := make(map[string]struct{}, len(vocab)+len(board))
	for _, w := range codenames.NormalizeAll(board) {
		exclude[w] = struct{}{}
	}

	var out []string
	for _, w := range codenames.NormalizeAll(vocab) {
		if _, ok := exclude[w]; ok {
			continue
		}
		// Adding it here drops later duplicates.
		exclude[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
