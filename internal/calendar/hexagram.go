package calendar

import "strings"

// hexagramWords is the fixed small six-ren vocabulary, in cycle order.
var hexagramWords = [6]string{"大安", "留连", "速喜", "赤口", "小吉", "空亡"}

// Hexagram maps three caller-supplied numbers to their three divination
// words. Each number advances the six-word cycle from where the previous
// one landed, so the indices chain: n1, n1+n2-1, n1+n2+n3-2.
//
// The function is total over integers; rejecting non-positive or missing
// inputs is the caller's job.
func Hexagram(n1, n2, n3 int) string {
	words := []string{
		hexagramWords[wrapSix(n1)-1],
		hexagramWords[wrapSix(n1+n2-1)-1],
		hexagramWords[wrapSix(n1+n2+n3-2)-1],
	}
	return strings.Join(words, " ")
}

// wrapSix folds n into the 1-based cycle position 1..6.
func wrapSix(n int) int {
	r := mod(n, 6)
	if r == 0 {
		r = 6
	}
	return r
}
