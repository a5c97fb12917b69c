package codenames

// Board contains all of the cards in a game of Codenames. The zeroth card
// corresponds to the top-left, the fourth to the top-right, and the
// twenty-fourth to the bottom-right.
type Board struct {
	Cards []Card `json:"cards"`
}

// Card is a single game card, and its corresponding affiliation.
type Card struct {
	Codename string `json:"codename"`
	Agent    Agent  `json:"agent"`
	Revealed bool   `json:"revealed"`
}

// Words splits the board into the raw word lists a Spymaster sees.
func (b *Board) Words() *Words {
	w := &Words{}
	for _, c := range b.Cards {
		switch c.Agent {
		case RedAgent:
			w.Red = append(w.Red, c.Codename)
		case BlueAgent:
			w.Blue = append(w.Blue, c.Codename)
		case Bystander:
			w.Neutral = append(w.Neutral, c.Codename)
		case Assassin:
			w.Assassin = c.Codename
		}
		if c.Revealed {
			w.Revealed = append(w.Revealed, c.Codename)
		}
	}
	return w
}

// Words is the unfiltered assignment of board words to affiliations, along
// with the words that have already been guessed.
type Words struct {
	Red      []string
	Blue     []string
	Neutral  []string
	Assassin string
	Revealed []string
}

// BoardState is the board from the point of view of the Spymaster giving a
// clue: every unrevealed word, partitioned by what it means for Team.
type BoardState struct {
	Team Team   `json:"team"`
	Risk string `json:"risk"`

	// Target holds the active team's unrevealed words.
	Target []string `json:"target"`
	// Penalty holds the opposing team's unrevealed words.
	Penalty []string `json:"penalty"`
	// Neutral holds the unrevealed bystanders.
	Neutral []string `json:"neutral"`
	// Assassin is empty if there's no assassin or it was already revealed.
	Assassin string `json:"assassin,omitempty"`
}

// NewBoardState normalizes the given words and partitions them for team.
// Revealed words are dropped from every partition. A word that shows up under
// more than one affiliation keeps the first of assassin, target, penalty,
// neutral, so the partitions never overlap.
func NewBoardState(team Team, risk string, w *Words) *BoardState {
	revealed := make(map[string]struct{})
	for _, word := range NormalizeAll(w.Revealed) {
		revealed[word] = struct{}{}
	}

	seen := make(map[string]struct{})
	take := func(words []string) []string {
		var out []string
		for _, word := range NormalizeAll(words) {
			if _, ok := revealed[word]; ok {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			out = append(out, word)
		}
		return out
	}

	target, penalty := w.Red, w.Blue
	if team == BlueTeam {
		target, penalty = w.Blue, w.Red
	}

	bs := &BoardState{Team: team, Risk: Normalize(risk)}
	if a := take([]string{w.Assassin}); len(a) == 1 {
		bs.Assassin = a[0]
	}
	bs.Target = take(target)
	bs.Penalty = take(penalty)
	bs.Neutral = take(w.Neutral)
	return bs
}

// ActiveWords returns every unrevealed word on the board.
func (b *BoardState) ActiveWords() []string {
	out := make([]string, 0, len(b.Target)+len(b.Penalty)+len(b.Neutral)+1)
	out = append(out, b.Target...)
	out = append(out, b.Penalty...)
	out = append(out, b.Neutral...)
	if b.Assassin != "" {
		out = append(out, b.Assassin)
	}
	return out
}

func (b *BoardState) Clone() *BoardState {
	return &BoardState{
		Team:     b.Team,
		Risk:     b.Risk,
		Target:   cloneStrings(b.Target),
		Penalty:  cloneStrings(b.Penalty),
		Neutral:  cloneStrings(b.Neutral),
		Assassin: b.Assassin,
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
