package bayes

import "fmt"
import "math"

// Model holds the trained log conditional probabilities of both classes.
// Index 0 is ham, index 1 is spam, matching the dataset labels.
type Model struct {
	LogHam  []float64 // log P(token | ham) per vocabulary index
	LogSpam []float64 // log P(token | spam) per vocabulary index

	// PriorSpam is the probability that a document is spam
	PriorSpam float64
}

// Train estimates the model from a document matrix and its class labels.
// Counts start at one and denominators at two (Laplace smoothing), so no
// conditional probability is ever zero, and the probabilities are kept in
// log space so long documents cannot underflow the product.
func Train(mat [][]float64, labels []int) (*Model, error) {
	if len(mat) == 0 {
		return nil, fmt.Errorf("Train: empty document matrix")
	}
	if len(mat) != len(labels) {
		return nil, fmt.Errorf("Train: %d documents but %d labels", len(mat), len(labels))
	}
	width := len(mat[0])
	if width == 0 {
		return nil, fmt.Errorf("Train: empty vocabulary")
	}

	var spamDocs int
	for i, l := range labels {
		if l != 0 && l != 1 {
			return nil, fmt.Errorf("Train: label %d of document %d is not a class", l, i)
		}
		if len(mat[i]) != width {
			return nil, fmt.Errorf("Train: document %d has width %d, want %d", i, len(mat[i]), width)
		}
		spamDocs += l
	}
	if spamDocs == 0 || spamDocs == len(labels) {
		return nil, fmt.Errorf("Train: corpus holds a single class, nothing to separate")
	}

	hamNum := make([]float64, width)
	spamNum := make([]float64, width)
	for i := range hamNum {
		hamNum[i] = 1
		spamNum[i] = 1
	}
	hamDenom, spamDenom := 2.0, 2.0

	for i, vec := range mat {
		var sum float64
		for _, v := range vec {
			sum += v
		}
		if labels[i] == 1 {
			for j, v := range vec {
				spamNum[j] += v
			}
			spamDenom += sum
		} else {
			for j, v := range vec {
				hamNum[j] += v
			}
			hamDenom += sum
		}
	}

	m := &Model{
		LogHam:    make([]float64, width),
		LogSpam:   make([]float64, width),
		PriorSpam: float64(spamDocs) / float64(len(labels)),
	}
	for j := 0; j < width; j++ {
		m.LogHam[j] = math.Log(hamNum[j] / hamDenom)
		m.LogSpam[j] = math.Log(spamNum[j] / spamDenom)
	}
	return m, nil
}

// Classify returns the most probable class of a vectorized document
func (m *Model) Classify(vec []float64) (int, error) {
	if len(vec) != len(m.LogHam) {
		return 0, fmt.Errorf("Classify: vector width %d does not match model width %d", len(vec), len(m.LogHam))
	}
	spam := math.Log(m.PriorSpam)
	ham := math.Log(1 - m.PriorSpam)
	for j, v := range vec {
		if v != 0 {
			spam += v * m.LogSpam[j]
			ham += v * m.LogHam[j]
		}
	}
	if spam > ham {
		return 1, nil
	}
	return 0, nil
}

// TrainDocs vectorizes the documents with the vocabulary as word sets and
// trains on them
func TrainDocs(v Vocab, docs [][]string, labels []int) (*Model, error) {
	mat := make([][]float64, len(docs))
	for i, doc := range docs {
		mat[i] = SetOfWords(v, doc)
	}
	return Train(mat, labels)
}

// ClassifyDoc vectorizes one document as a word set and classifies it
func (m *Model) ClassifyDoc(v Vocab, doc []string) (int, error) {
	return m.Classify(SetOfWords(v, doc))
}
