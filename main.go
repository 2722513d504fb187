// Package main is the entry point for the hoopstats CLI, which loads a season
// of per-player NBA averages and answers filter, leaderboard, comparison and
// team queries from the terminal, a REPL or an HTTP dashboard.
package main

import "github.com/pable/hoopstats/cmd"

func main() {
	cmd.Execute()
}
