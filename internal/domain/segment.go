package domain

import "regexp"

// chunkPattern matches the shortest run ending in sentence-terminal
// punctuation followed by whitespace or end of input. The dot does not
// cross line breaks. Whitespace is the Unicode set: NBSP, \v, U+3000,
// U+2028 and the ASCII separators \x1C-\x1F all end a sentence.
var chunkPattern = regexp.MustCompile(`.+?[.!?](?:[\s\v\p{Z}\x{85}\x{1C}-\x{1F}]+|$)`)

// SplitChunks segments text into translation units. Trailing whitespace
// stays with the chunk it follows. Text without terminal punctuation
// yields no chunks.
func SplitChunks(text string) []string {
	return chunkPattern.FindAllString(text, -1)
}
