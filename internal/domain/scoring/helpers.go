package scoring

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	// Base cases: if either string is empty, distance is the other string's length
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// DP table: matrix[i][j] = distance between s1[0:i] and s2[0:j]
	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}

	// matrix[i][0] represents deleting all i characters from s1
	// matrix[0][j] represents inserting all j characters from s2
	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			// Cost of substitution: 0 if characters match, 1 otherwise
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion: remove char from s1
				matrix[i][j-1]+1,      // Insertion: add char to s1
				matrix[i-1][j-1]+cost, // Substitution: replace char in s1
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

// minBrandDistance returns the smallest edit distance between hostname and
// any of the brand domains. Returns a large sentinel when the brand list is
// empty so the typosquatting rule stays silent.
func minBrandDistance(hostname string, brands []string) int {
	best := 1 << 30
	for _, brand := range brands {
		if d := levenshteinDistance(hostname, brand); d < best {
			best = d
		}
	}
	return best
}
