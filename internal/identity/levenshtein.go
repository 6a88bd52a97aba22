package identity

// levenshteinDistance counts the single-character insertions, deletions, and
// substitutions needed to turn one string into the other. It compares bytes,
// which is exact for normalized names since they only hold [a-z0-9 ].
func levenshteinDistance(first string, second string) int {
	if first == second {
		return 0
	}
	if len(first) == 0 {
		return len(second)
	}
	if len(second) == 0 {
		return len(first)
	}

	if len(first) > len(second) {
		first, second = second, first
	}

	previousRow := make([]int, len(first)+1)
	currentRow := make([]int, len(first)+1)
	for index := range previousRow {
		previousRow[index] = index
	}

	for secondIndex := 1; secondIndex <= len(second); secondIndex++ {
		currentRow[0] = secondIndex
		for firstIndex := 1; firstIndex <= len(first); firstIndex++ {
			substitutionCost := 0
			if first[firstIndex-1] != second[secondIndex-1] {
				substitutionCost = 1
			}
			currentRow[firstIndex] = min(
				previousRow[firstIndex]+1,
				currentRow[firstIndex-1]+1,
				previousRow[firstIndex-1]+substitutionCost,
			)
		}
		previousRow, currentRow = currentRow, previousRow
	}

	return previousRow[len(first)]
}
