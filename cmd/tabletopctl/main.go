// Package main is the entry point for the tabletopctl CLI tool, which
// fetches the group's game log from Google Sheets and prints leaderboards.
package main

func main() {
	Execute()
}
