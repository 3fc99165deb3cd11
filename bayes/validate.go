package bayes

import "fmt"
import "math/rand"

// Holdout randomly keeps n documents out of training, trains on the rest
// and returns the error rate over the held-out documents. Misclassified
// documents are reported through report when it is not nil.
func Holdout(docs [][]string, labels []int, n int, report func(doc []string, got, want int)) (float64, error) {
	if n <= 0 || n >= len(docs) {
		return 0, fmt.Errorf("Holdout: cannot hold %d documents out of %d", n, len(docs))
	}
	v := NewVocabulary(docs)

	perm := rand.Perm(len(docs))
	test := perm[:n]
	training := perm[n:]

	mat := make([][]float64, 0, len(training))
	cls := make([]int, 0, len(training))
	for _, i := range training {
		mat = append(mat, SetOfWords(v, docs[i]))
		cls = append(cls, labels[i])
	}
	m, err := Train(mat, cls)
	if err != nil {
		return 0, err
	}

	var errors int
	for _, i := range test {
		got, err := m.Classify(SetOfWords(v, docs[i]))
		if err != nil {
			return 0, err
		}
		if got != labels[i] {
			errors++
			if report != nil {
				report(docs[i], got, labels[i])
			}
		}
	}
	return float64(errors) / float64(n), nil
}
