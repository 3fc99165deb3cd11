package bayes

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/neurlang/autoencoder/datasets/spam"
)

func trainedSample(t *testing.T) (*Vocabulary, *Model) {
	docs, labels := spam.Sample()
	v := NewVocabulary(docs)
	m, err := TrainDocs(v, docs, labels)
	if err != nil {
		t.Fatal(err)
	}
	return v, m
}

func TestVocabulary(t *testing.T) {
	docs, _ := spam.Sample()
	v := NewVocabulary(docs)
	if v.Len() != 32 {
		t.Errorf("sample corpus has %d distinct tokens, want 32", v.Len())
	}
	if i, ok := v.Index("my"); !ok || i != 0 {
		t.Errorf("first token index %d %v, want 0 true", i, ok)
	}
	if _, ok := v.Index("unseen"); ok {
		t.Errorf("out of vocabulary token found")
	}
}

func TestSetAndBagOfWords(t *testing.T) {
	v := NewVocabulary([][]string{{"stop", "posting", "stop"}})
	set := SetOfWords(v, []string{"stop", "stop", "unknown"})
	if set[0] != 1 || set[1] != 0 {
		t.Errorf("set vector %v, want [1 0]", set)
	}
	bag := BagOfWords(v, []string{"stop", "stop", "unknown"})
	if bag[0] != 2 || bag[1] != 0 {
		t.Errorf("bag vector %v, want [2 0]", bag)
	}
}

// the worked example of the abusive-post corpus: a loving post is clean,
// an abusive one is not
func TestClassifySample(t *testing.T) {
	v, m := trainedSample(t)
	got, err := m.ClassifyDoc(v, []string{"love", "my", "dalmation"})
	if err != nil {
		t.Fatal(err)
	}
	if got != spam.Ham {
		t.Errorf("loving post classified %d, want %d", got, spam.Ham)
	}
	got, err = m.ClassifyDoc(v, []string{"stupid", "garbage"})
	if err != nil {
		t.Fatal(err)
	}
	if got != spam.Spam {
		t.Errorf("abusive post classified %d, want %d", got, spam.Spam)
	}
}

// Laplace smoothing must keep every log probability finite
func TestLaplaceSmoothing(t *testing.T) {
	_, m := trainedSample(t)
	if m.PriorSpam != 0.5 {
		t.Errorf("prior %v, want 0.5", m.PriorSpam)
	}
	for j := range m.LogHam {
		if math.IsInf(m.LogHam[j], 0) || math.IsInf(m.LogSpam[j], 0) {
			t.Fatalf("log probability at %d is infinite, smoothing broken", j)
		}
	}
}

func TestTrainRejectsDegenerate(t *testing.T) {
	if _, err := Train(nil, nil); err == nil {
		t.Errorf("empty matrix accepted")
	}
	if _, err := Train([][]float64{{1}, {1}}, []int{1, 1}); err == nil {
		t.Errorf("single class accepted")
	}
	if _, err := Train([][]float64{{1}, {1, 0}}, []int{0, 1}); err == nil {
		t.Errorf("ragged matrix accepted")
	}
	if _, err := Train([][]float64{{1}, {1}}, []int{0, 2}); err == nil {
		t.Errorf("label 2 accepted")
	}
	_, m := trainedSample(t)
	if _, err := m.Classify(make([]float64, 3)); err == nil {
		t.Errorf("wrong vector width accepted")
	}
}

func TestHashingVocab(t *testing.T) {
	v, err := NewHashingVocab(100, 0)
	if err != nil {
		t.Fatal(err)
	}
	// 101 is the first prime at or above 100
	if v.Buckets != 101 {
		t.Errorf("bucket count %d, want 101", v.Buckets)
	}
	i, ok := v.Index("anything")
	if !ok {
		t.Errorf("hashed vocab reported out of vocabulary")
	}
	if i < 0 || i >= v.Len() {
		t.Errorf("bucket %d out of range 0..%d", i, v.Len()-1)
	}
	if j, _ := v.Index("anything"); j != i {
		t.Errorf("same token bucketed twice differently")
	}
	if _, err := NewHashingVocab(1, 0); err == nil {
		t.Errorf("single bucket accepted")
	}
}

// the classifier still separates the sample corpus through a hashed vocabulary
func TestClassifyHashed(t *testing.T) {
	docs, labels := spam.Sample()
	v, err := NewHashingVocab(64, 1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := TrainDocs(v, docs, labels)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.ClassifyDoc(v, []string{"stupid", "garbage", "worthless"})
	if err != nil {
		t.Fatal(err)
	}
	if got != spam.Spam {
		t.Errorf("abusive post classified %d through hashed vocab, want %d", got, spam.Spam)
	}
}

func TestHoldout(t *testing.T) {
	rand.Seed(8)
	docs, labels := spam.Sample()
	// duplicate the corpus so holding two documents out leaves both classes
	docs = append(append([][]string{}, docs...), docs...)
	labels = append(append([]int{}, labels...), labels...)
	rate, err := Holdout(docs, labels, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rate < 0 || rate > 1 {
		t.Errorf("error rate %v out of range", rate)
	}
	if _, err := Holdout(docs, labels, len(docs), nil); err == nil {
		t.Errorf("holding out everything accepted")
	}
}

func TestModelRoundTrip(t *testing.T) {
	v, m := trainedSample(t)
	var buf bytes.Buffer
	if err := WriteCompressedModel(&buf, v, m); err != nil {
		t.Fatal(err)
	}
	v2, m2, err := ReadCompressedModel(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if v2.Len() != v.Len() || m2.PriorSpam != m.PriorSpam {
		t.Fatalf("round trip changed the model")
	}
	got, err := m2.ClassifyDoc(v2, []string{"stupid", "garbage"})
	if err != nil {
		t.Fatal(err)
	}
	if got != spam.Spam {
		t.Errorf("reloaded model classified %d, want %d", got, spam.Spam)
	}

	docs, labels := spam.Sample()
	hv, _ := NewHashingVocab(32, 5)
	hm, err := TrainDocs(hv, docs, labels)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := WriteCompressedModel(&buf, hv, hm); err != nil {
		t.Fatal(err)
	}
	hv2, _, err := ReadCompressedModel(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if hv2.(*HashingVocab).Buckets != hv.Buckets || hv2.(*HashingVocab).Salt != hv.Salt {
		t.Errorf("hashed vocabulary round trip changed buckets")
	}
}
