package engine

// compress removes empty cells from a line, keeping tile order.
// The result reuses the input's backing array.
func compress(line []int) []int {
	out := line[:0]
	for _, v := range line {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}

// reduce merges equal neighbours of a compressed line, scanning from index 0
// (the wall). A merged cell is never merged again in the same pass.
// Returns the reduced line, the sum of merged values and the merge count.
func reduce(line []int) (out []int, gained, merges int) {
	if len(line) <= 1 {
		return line, 0, 0
	}

	out = line[:0]
	for i := 0; i < len(line); {
		if i+1 < len(line) && line[i] == line[i+1] {
			merged := line[i] * 2
			out = append(out, merged)
			gained += merged
			merges++
			i += 2
			continue
		}
		out = append(out, line[i])
		i++
	}
	return out, gained, merges
}

// fill pads a reduced line with zeros up to size, away from the wall.
func fill(line []int, size int) []int {
	for len(line) < size {
		line = append(line, 0)
	}
	return line
}

// slideLine runs compress, reduce and fill over a wall-first line.
// The input slice is overwritten.
func slideLine(line []int) (out []int, gained, merges int) {
	size := len(line)
	out, gained, merges = reduce(compress(line))
	return fill(out, size), gained, merges
}
