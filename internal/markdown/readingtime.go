package markdown

import (
	"fmt"
	"math"
	"time"
	"unicode"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

// DefaultWordsPerMinute is the reading speed used when none is configured.
const DefaultWordsPerMinute = 200

// EstimateReadingTime counts the words in text and converts them to minutes
// at wpm words per minute. Whitespace separates words; every CJK ideograph
// counts as a word of its own.
func EstimateReadingTime(text string, wpm int) interfaces.ReadingTime {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}

	words := CountWords(text)
	minutes := float64(words) / float64(wpm)
	display := int(math.Ceil(minutes))
	if display < 1 {
		display = 1
	}

	return interfaces.ReadingTime{
		Text:    fmt.Sprintf("%d min read", display),
		Minutes: minutes,
		Time:    time.Duration(minutes * float64(time.Minute)),
		Words:   words,
	}
}

// CountWords returns the number of words in text.
func CountWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case isCJK(r):
			count++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}
