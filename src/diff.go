package src

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// edit represents a single line change in a diff.
type edit struct {
	tag string // " " same, "+" add, "-" del
	txt string
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	raw := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range raw {
		raw[i] = strings.TrimRight(raw[i], "\r")
	}
	return raw
}

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// UnifiedDiff renders a colorized git-style unified diff between two
// versions of a project file. Equal contents produce an empty string.
func UnifiedDiff(path, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	oldLines := splitLines(oldText)
	newLines := splitLines(newText)
	n, m := len(oldLines), len(newLines)

	// Build LCS table.
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	// Collect edits.
	var seq []edit
	i, j := 0, 0
	for i < n && j < m {
		if oldLines[i] == newLines[j] {
			seq = append(seq, edit{" ", oldLines[i]})
			i++
			j++
		} else if lcs[i+1][j] >= lcs[i][j+1] {
			seq = append(seq, edit{"-", oldLines[i]})
			i++
		} else {
			seq = append(seq, edit{"+", newLines[j]})
			j++
		}
	}
	for ; i < n; i++ {
		seq = append(seq, edit{"-", oldLines[i]})
	}
	for ; j < m; j++ {
		seq = append(seq, edit{"+", newLines[j]})
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%sdiff --git a/%s b/%s%s\n", colorBold+colorCyan, path, path, colorReset))
	out.WriteString(fmt.Sprintf("index %s..%s 100644\n", shortSHA(oldText), shortSHA(newText)))
	out.WriteString(fmt.Sprintf("%s--- a/%s%s\n", colorCyan, path, colorReset))
	out.WriteString(fmt.Sprintf("%s+++ b/%s%s\n", colorCyan, path, colorReset))

	const ctx = 3
	var hunk []edit
	var startOld, startNew int
	countOld, countNew := 0, 0

	printHunk := func() {
		if len(hunk) == 0 {
			return
		}
		out.WriteString(fmt.Sprintf("%s@@ -%d,%d +%d,%d @@%s\n",
			colorCyan, startOld+1, countOld, startNew+1, countNew, colorReset))
		for _, e := range hunk {
			switch e.tag {
			case "+":
				out.WriteString(fmt.Sprintf("%s+%s%s\n", colorGreen, e.txt, colorReset))
			case "-":
				out.WriteString(fmt.Sprintf("%s-%s%s\n", colorRed, e.txt, colorReset))
			default:
				out.WriteString(fmt.Sprintf("%s %s%s\n", colorGray, e.txt, colorReset))
			}
		}
		hunk = hunk[:0]
	}

	inHunk := false
	for idx := range seq {
		e := seq[idx]
		if e.tag != " " {
			if !inHunk {
				inHunk = true
				startOld = max(0, idx-ctx)
				startNew = startOld
				hunk = append(hunk, seq[max(0, idx-ctx):idx]...)
				countOld, countNew = 0, 0
			}
			hunk = append(hunk, e)
			if e.tag != "+" {
				countOld++
			}
			if e.tag != "-" {
				countNew++
			}
		} else if inHunk {
			hunk = append(hunk, e)
			countOld++
			countNew++

			end := min(idx+ctx+1, len(seq))
			if !hasChangeAhead(seq[idx+1 : end]) {
				printHunk()
				inHunk = false
			}
		}
	}
	if inHunk {
		printHunk()
	}

	return out.String()
}

// shortSHA returns a short SHA1-like index label for diff headers.
func shortSHA(s string) string {
	h := sha1.Sum([]byte(s))
	return fmt.Sprintf("%x", h[:3])
}

// hasChangeAhead checks if the next few edits contain +/-
func hasChangeAhead(next []edit) bool {
	for _, e := range next {
		if e.tag == "+" || e.tag == "-" {
			return true
		}
	}
	return false
}
