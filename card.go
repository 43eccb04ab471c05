package main

import "fmt"

const (
	CardUnknown = "?"
	CardBreak   = "☕"
)

var numericCards = map[string]float64{
	"0":  0,
	"1":  1,
	"2":  2,
	"3":  3,
	"5":  5,
	"8":  8,
	"13": 13,
	"21": 21,
	"34": 34,
	"55": 55,
	"89": 89,
}

func ValidCard(card string) bool {
	if card == CardUnknown || card == CardBreak {
		return true
	}
	_, ok := numericCards[card]
	return ok
}

// Average computes the mean of the numeric cards in the slice, rounded to
// one decimal place. The sentinels count as no vote. Returns false when not
// a single numeric card is present.
func Average(cards []string) (string, bool) {
	sum := 0.0
	count := 0
	for _, card := range cards {
		value, ok := numericCards[card]
		if !ok {
			continue
		}
		sum += value
		count++
	}
	if count == 0 {
		return "", false
	}
	return fmt.Sprintf("%.1f", sum/float64(count)), true
}
