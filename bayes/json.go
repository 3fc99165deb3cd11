package bayes

import "compress/lzw"
import "encoding/json"
import "fmt"
import "io"
import "os"

// fileModel is the on-disk layout of a trained model with its vocabulary.
// Exact vocabularies store their token list, hashed ones their bucket count.
type fileModel struct {
	Tokens  []string `json:"tokens,omitempty"`
	Buckets uint32   `json:"buckets,omitempty"`
	Salt    uint32   `json:"salt,omitempty"`

	LogHam    []float64 `json:"logham"`
	LogSpam   []float64 `json:"logspam"`
	PriorSpam float64   `json:"priorspam"`
}

// WriteCompressedModelToFile writes the model and its vocabulary to a lzw file
func WriteCompressedModelToFile(name string, v Vocab, m *Model) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = WriteCompressedModel(file, v, m)
	file.Close()
	return err
}

// WriteCompressedModel writes the model and its vocabulary to a writer
func WriteCompressedModel(w io.Writer, v Vocab, m *Model) error {
	fm := fileModel{
		LogHam:    m.LogHam,
		LogSpam:   m.LogSpam,
		PriorSpam: m.PriorSpam,
	}
	switch vv := v.(type) {
	case *Vocabulary:
		fm.Tokens = vv.Tokens()
	case *HashingVocab:
		fm.Buckets = vv.Buckets
		fm.Salt = vv.Salt
	default:
		return fmt.Errorf("bayes: unknown vocabulary type %T", v)
	}
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(fm); err != nil {
		return err
	}
	return lw.Close()
}

// ReadCompressedModelFromFile reads a model and its vocabulary from a lzw file
func ReadCompressedModelFromFile(name string) (Vocab, *Model, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return ReadCompressedModel(file)
}

// ReadCompressedModel reads a model and its vocabulary from a reader
func ReadCompressedModel(r io.Reader) (Vocab, *Model, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	var fm fileModel
	if err := json.NewDecoder(lr).Decode(&fm); err != nil {
		return nil, nil, err
	}

	var v Vocab
	if fm.Buckets != 0 {
		v = &HashingVocab{Buckets: fm.Buckets, Salt: fm.Salt}
	} else {
		v = vocabularyFromTokens(fm.Tokens)
	}
	m := &Model{LogHam: fm.LogHam, LogSpam: fm.LogSpam, PriorSpam: fm.PriorSpam}
	if v.Len() != len(m.LogHam) || len(m.LogHam) != len(m.LogSpam) {
		return nil, nil, fmt.Errorf("bayes: model widths %d/%d do not match vocabulary %d", len(m.LogHam), len(m.LogSpam), v.Len())
	}
	return v, m, nil
}
