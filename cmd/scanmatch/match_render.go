package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"scanmatch/internal/match"
	"scanmatch/internal/scan"
)

var matchHeaders = []string{"SCORE", "FIRST NAME", "LAST NAME", "DOB", "BONUS", "RATIONALE"}

var matchAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}

func matchRows(matches []match.RankedMatch, top int) [][]string {
	if top > 0 && len(matches) > top {
		matches = matches[:top]
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		bonus := string(m.Score.Bonus)
		if m.Score.Bonus == match.BonusNone {
			bonus = ""
		}
		rows = append(rows, []string{
			strconv.Itoa(m.Score.Total),
			m.Person.FirstName,
			m.Person.LastName,
			m.Person.DateOfBirth,
			bonus,
			strings.Join(m.Score.Rationale, "; "),
		})
	}
	return rows
}

// printMatches renders a rounded table on terminals and tab-separated lines
// when output is piped.
func printMatches(out io.Writer, matches []match.RankedMatch, top int) {
	rows := matchRows(matches, top)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No candidates found")
		return
	}
	if isTerminal(out) {
		fmt.Fprintln(out, renderTable(matchHeaders, rows, matchAligns))
		return
	}
	fmt.Fprintln(out, strings.Join(matchHeaders, "\t"))
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

func printIdentity(out io.Writer, identity scan.Identity) {
	if !identity.ScanTime.IsZero() {
		fmt.Fprintf(out, "Scanned:     %s\n", identity.ScanTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(out, "First name:  %s\n", identity.FirstName)
	fmt.Fprintf(out, "Last name:   %s\n", identity.LastName)
	if identity.FullName != "" {
		fmt.Fprintf(out, "Full name:   %s\n", identity.FullName)
	}
	fmt.Fprintf(out, "DOB:         %s\n", identity.DateOfBirth)
	if identity.Age != "" {
		fmt.Fprintf(out, "Age:         %s\n", identity.Age)
	}
	if identity.IDNumber != "" {
		fmt.Fprintf(out, "ID number:   %s\n", identity.IDNumber)
	}
	if identity.IDExpiration != "" {
		fmt.Fprintf(out, "ID expires:  %s\n", identity.IDExpiration)
	}
	if identity.IDIssued != "" {
		fmt.Fprintf(out, "ID issued:   %s\n", identity.IDIssued)
	}
}
