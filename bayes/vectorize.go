package bayes

// SetOfWords vectorizes a document as token presence flags.
// Out-of-vocabulary tokens fall out of the vector.
func SetOfWords(v Vocab, doc []string) []float64 {
	vec := make([]float64, v.Len())
	for _, tok := range doc {
		if i, ok := v.Index(tok); ok {
			vec[i] = 1
		}
	}
	return vec
}

// BagOfWords vectorizes a document as token counts
func BagOfWords(v Vocab, doc []string) []float64 {
	vec := make([]float64, v.Len())
	for _, tok := range doc {
		if i, ok := v.Index(tok); ok {
			vec[i]++
		}
	}
	return vec
}
