// Package grading holds the pure grade-point arithmetic: letter bands,
// credit-weighted averages, academic standing and letter histograms.
package grading

import (
	"math"
	"strconv"
	"strings"
)

// Letter grades, best first
const (
	LetterA      = "A"
	LetterAMinus = "A-"
	LetterBPlus  = "B+"
	LetterB      = "B"
	LetterBMinus = "B-"
	LetterCPlus  = "C+"
	LetterC      = "C"
	LetterCMinus = "C-"
	LetterDPlus  = "D+"
	LetterD      = "D"
)

type band struct {
	min    float64
	letter string
}

// bands are checked top-down; each lower bound is inclusive
var bands = []band{
	{3.7, LetterA},
	{3.3, LetterAMinus},
	{3.0, LetterBPlus},
	{2.7, LetterB},
	{2.3, LetterBMinus},
	{2.0, LetterCPlus},
	{1.7, LetterC},
	{1.3, LetterCMinus},
	{1.0, LetterDPlus},
}

// Letters lists every letter grade from best to worst
var Letters = []string{
	LetterA, LetterAMinus, LetterBPlus, LetterB, LetterBMinus,
	LetterCPlus, LetterC, LetterCMinus, LetterDPlus, LetterD,
}

// Letter maps a grade value onto its letter band
func Letter(value float64) string {
	for _, b := range bands {
		if value >= b.min {
			return b.letter
		}
	}
	return LetterD
}

// Weighted is one graded course as seen by the GPA arithmetic
type Weighted struct {
	Value   float64
	Credits int
}

// GPA returns sum(value*credits)/sum(credits), or 0 when there are no credits
func GPA(entries []Weighted) float64 {
	var credits int
	var sum float64
	for _, e := range entries {
		credits += e.Credits
		sum += e.Value * float64(e.Credits)
	}
	return Divide(sum, credits)
}

// Divide returns weightedSum/credits, 0 when credits is 0
func Divide(weightedSum float64, credits int) float64 {
	if credits <= 0 {
		return 0
	}
	return weightedSum / float64(credits)
}

// Standing classifies a GPA
func Standing(gpa float64) string {
	switch {
	case gpa >= 3.5:
		return "Cum Laude"
	case gpa >= 3.0:
		return "Excellent"
	case gpa >= 2.5:
		return "Good"
	case gpa >= 2.0:
		return "Satisfactory"
	default:
		return "Needs Improvement"
	}
}

// Distribution counts letters; all ten bands are present. Unknown letters are ignored.
func Distribution(letters []string) map[string]int {
	dist := make(map[string]int, len(Letters))
	for _, l := range Letters {
		dist[l] = 0
	}
	for _, l := range letters {
		if _, known := dist[l]; known {
			dist[l]++
		}
	}
	return dist
}

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeAcademicYear turns "2024" into "2024/2025". Anything else is returned trimmed.
func NormalizeAcademicYear(year string) string {
	year = strings.TrimSpace(year)
	if strings.Contains(year, "/") {
		return year
	}
	start, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	return strconv.Itoa(start) + "/" + strconv.Itoa(start+1)
}
