package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding embeds a recipe's title and description as simple text
// statistics (length, vowel count, consonant count). Equal text always maps
// to the same vector, so no external model is involved.
func GenerateEmbedding(title, description string) pgvector.Vector {
	text := strings.ToLower(strings.TrimSpace(title + " " + description))
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants})
}
