package js_ast

import "sort"

// NameMinifier hands out short generated names by index: one head character
// for the first 54 names, then a growing tail. Callers should assign low
// indexes to the names they use most.
type NameMinifier struct {
	head string
	tail string
}

// DefaultNameMinifier generates names in plain alphabetical order
var DefaultNameMinifier = NameMinifier{
	head: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_$",
	tail: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_$",
}

const headCharCount = 54
const tailCharCount = 64

func (minifier *NameMinifier) NumberToMinifiedName(index int) string {
	name := minifier.head[index%headCharCount : index%headCharCount+1]
	index /= headCharCount

	// Tail digits are offset by one so "a" and "aa" are distinct names
	for index > 0 {
		index--
		name += minifier.tail[index%tailCharCount : index%tailCharCount+1]
		index /= tailCharCount
	}
	return name
}

// CharFreq tallies identifier character usage so a compiled NameMinifier can
// spend the shortest names on the characters a module already repeats. Slots
// are indexed in "DefaultNameMinifier.tail" order.
type CharFreq [tailCharCount]int32

// Tally counts each identifier character of name the given number of times.
// Feeding it every renamable name with its occurrence count, the way the
// property mangler counts them, weights the histogram by how often each
// character would survive into the output.
func (freq *CharFreq) Tally(name string, count int32) {
	if count == 0 {
		return
	}
	for i := 0; i < len(name); i++ {
		if slot := tailCharSlot(name[i]); slot >= 0 {
			freq[slot] += count
		}
	}
}

func tailCharSlot(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26
	case c >= '0' && c <= '9':
		return int(c-'0') + 52
	case c == '_':
		return 62
	case c == '$':
		return 63
	}
	return -1
}

// Compile reorders both minifier alphabets by descending tally. Ties keep
// the default order so the result is deterministic. Digits stay out of the
// head alphabet since a name cannot start with one.
func (freq *CharFreq) Compile() NameMinifier {
	slots := make([]int, tailCharCount)
	for i := range slots {
		slots[i] = i
	}
	sort.SliceStable(slots, func(i int, j int) bool {
		return freq[slots[i]] > freq[slots[j]]
	})

	var minifier NameMinifier
	for _, slot := range slots {
		c := DefaultNameMinifier.tail[slot : slot+1]
		if c < "0" || c > "9" {
			minifier.head += c
		}
		minifier.tail += c
	}
	return minifier
}
