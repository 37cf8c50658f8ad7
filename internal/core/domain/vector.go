package domain

import "math"

// CosineSimilarity computes dot(a,b) / (|a|*|b|) for two embeddings.
//
// Vectors of different lengths come from different models and are not
// comparable; the result is defined as 0 rather than an error so a scan
// over heterogeneous historical data is never poisoned. Zero-norm
// vectors likewise score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
