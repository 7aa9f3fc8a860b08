package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

// HealthResult is the /healthz response body
type HealthResult struct {
	Status string `json:"status"`
}

// LeaderboardResult is the /api/leaderboard response body
type LeaderboardResult struct {
	Top10 []protocol.LeaderboardEntry `json:"top10"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LeaderboardResult:
		o.printLeaderboard(v.Top10)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printLeaderboard(entries []protocol.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("No games played yet.")
		return
	}

	fmt.Printf("%-4s %-20s %6s %6s\n", "#", "Player", "Wins", "Draws")
	for i, e := range entries {
		name := string(e.Name)
		if e.IsBot {
			name += " (bot)"
		}
		fmt.Printf("%-4d %-20s %6d %6d\n", i+1, name, e.Wins, e.Draws)
	}
}
