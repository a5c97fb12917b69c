// Package termio prints boards, hints and candidate rankings to a terminal.
package termio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	codenames "github.com/bcspragu/spymaster"
	"github.com/bcspragu/spymaster/spymaster"
	"github.com/olekukonko/tablewriter"
)

// PrintBoard draws the 5x5 grid, colored by affiliation. Revealed cards are
// underlined.
func PrintBoard(out io.Writer, b *codenames.Board) {
	printGrid(out, b, func(card codenames.Card) (string, tablewriter.Colors) {
		c := agentColors(card.Agent)
		if card.Revealed {
			c = append(c, tablewriter.UnderlineSingle)
		}
		return card.Codename, c
	})
}

// PrintPlayerBoard draws the grid the way guessers see it: only revealed cards
// show who they belong to.
func PrintPlayerBoard(out io.Writer, b *codenames.Board) {
	printGrid(out, b, func(card codenames.Card) (string, tablewriter.Colors) {
		if !card.Revealed {
			return card.Codename, nil
		}
		return fmt.Sprintf("%s (%s)", card.Codename, shortAgent(card.Agent)), agentColors(card.Agent)
	})
}

func printGrid(out io.Writer, b *codenames.Board, cell func(codenames.Card) (string, tablewriter.Colors)) {
	table := tablewriter.NewWriter(out)

	for i := 0; i < codenames.Rows; i++ {
		var row []string
		var colors []tablewriter.Colors
		for j := 0; j < codenames.Columns; j++ {
			idx := i*codenames.Columns + j
			if idx >= len(b.Cards) {
				break
			}
			text, c := cell(b.Cards[idx])
			colors = append(colors, c)
			row = append(row, text)
		}
		table.Rich(row, colors)
	}

	table.Render()
}

func agentColors(a codenames.Agent) tablewriter.Colors {
	switch a {
	case codenames.BlueAgent:
		return tablewriter.Colors{tablewriter.FgBlueColor}
	case codenames.RedAgent:
		return tablewriter.Colors{tablewriter.FgHiRedColor}
	case codenames.Assassin:
		return tablewriter.Colors{tablewriter.BgHiRedColor}
	}
	return nil
}

func shortAgent(a codenames.Agent) string {
	switch a {
	case codenames.RedAgent:
		return "red"
	case codenames.BlueAgent:
		return "blue"
	case codenames.Bystander:
		return "bystander"
	case codenames.Assassin:
		return "assassin"
	}
	return "?"
}

// PrintBoardState lists the unrevealed words by what they mean for the active
// team.
func PrintBoardState(out io.Writer, bs *codenames.BoardState) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Role", "Words"})
	table.SetAutoWrapText(false)
	table.Append([]string{"Target", strings.Join(bs.Target, ", ")})
	table.Append([]string{"Penalty", strings.Join(bs.Penalty, ", ")})
	table.Append([]string{"Neutral", strings.Join(bs.Neutral, ", ")})
	table.Append([]string{"Assassin", bs.Assassin})
	table.Render()
}

// PrintHint writes the one-line summary of a hint, followed by the words it's
// meant to lead to.
func PrintHint(out io.Writer, bs *codenames.BoardState, res *spymaster.Result) {
	fmt.Fprintf(out, "[%s | %s] AI Hint: %s (%d)\n", bs.Team, res.Risk.Name, res.Hint.Clue, res.Hint.Number)
	fmt.Fprintf(out, "Targets: %s\n", strings.Join(bs.Target, ", "))
}

// PrintRanking shows the top n scored candidates and the numbers behind each
// score. The chosen clue is marked with a *.
func PrintRanking(out io.Writer, res *spymaster.Result, n int) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Clue", "Score", "Target Sims", "Penalty", "Assassin"})
	table.SetAutoWrapText(false)

	for i, sc := range res.Ranked {
		if i == n {
			break
		}
		word := sc.Word
		if sc.Word == res.Chosen.Word {
			word += " *"
		}
		score := formatFloat(sc.Score)
		if sc.Vetoed {
			score = "VETO"
		}

		sims := make([]string, len(sc.Sims))
		for j, s := range sc.Sims {
			sims[j] = formatFloat(s)
		}

		row := []string{strconv.Itoa(i + 1), word, score, strings.Join(sims, " "), formatFloat(sc.Penalty), formatFloat(sc.AssassinSim)}
		var c tablewriter.Colors
		if sc.Vetoed {
			c = tablewriter.Colors{tablewriter.FgHiBlackColor}
		}
		colors := make([]tablewriter.Colors, len(row))
		for j := range colors {
			colors[j] = c
		}
		table.Rich(row, colors)
	}

	table.Render()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
