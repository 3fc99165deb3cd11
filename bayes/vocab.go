// Package bayes implements a multinomial naive Bayes text classifier with
// Laplace smoothing and log-space probabilities
package bayes

import "fmt"

import "github.com/jbarham/primegen"
import "github.com/neurlang/autoencoder/hash"

// Vocab maps tokens to feature vector indices
type Vocab interface {

	// Index returns the feature index of a token, false if out of vocabulary
	Index(token string) (int, bool)

	// Len returns the feature vector width
	Len() int
}

// Vocabulary is an exact insertion-ordered vocabulary built from documents
type Vocabulary struct {
	index  map[string]int
	tokens []string
}

// NewVocabulary collects every distinct token of the documents
func NewVocabulary(docs [][]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, doc := range docs {
		for _, tok := range doc {
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = len(v.tokens)
				v.tokens = append(v.tokens, tok)
			}
		}
	}
	return v
}

// vocabularyFromTokens rebuilds a Vocabulary from its ordered token list
func vocabularyFromTokens(tokens []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int, len(tokens)), tokens: tokens}
	for i, tok := range tokens {
		v.index[tok] = i
	}
	return v
}

// Index returns the feature index of a token
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Len returns the number of distinct tokens
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns the tokens in index order
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}

// HashingVocab buckets tokens with the modular hash instead of storing them.
// The bucket count is rounded up to a prime so the multiply-shift reduction
// spreads tokens evenly. Every token is in vocabulary.
type HashingVocab struct {
	Buckets uint32
	Salt    uint32
}

// NewHashingVocab creates a hashed vocabulary of at least minBuckets buckets
func NewHashingVocab(minBuckets int, salt uint32) (*HashingVocab, error) {
	if minBuckets < 2 {
		return nil, fmt.Errorf("NewHashingVocab: bucket count %d must be at least 2", minBuckets)
	}
	p := primegen.New()
	buckets := p.Next()
	for buckets < uint64(minBuckets) {
		buckets = p.Next()
	}
	return &HashingVocab{Buckets: uint32(buckets), Salt: salt}, nil
}

// Index buckets the token, every token is in vocabulary
func (v *HashingVocab) Index(token string) (int, bool) {
	return int(hash.String(token, v.Salt, v.Buckets)), true
}

// Len returns the bucket count
func (v *HashingVocab) Len() int {
	return int(v.Buckets)
}
