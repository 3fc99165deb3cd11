package main

import "flag"
import "fmt"
import "strings"

import "github.com/neurlang/autoencoder/bayes"
import "github.com/neurlang/autoencoder/datasets/spam"

func main() {

	dstmodel := flag.String("dstmodel", "spam.json.t.lzw", "model destination .json.t.lzw file")
	hamDir := flag.String("ham", "", "directory of ham .txt mails, empty uses the built-in toy corpus")
	spamDir := flag.String("spam", "", "directory of spam .txt mails")
	holdout := flag.Int("holdout", 10, "documents held out for the error rate estimate, 0 skips it")
	buckets := flag.Int("buckets", 0, "hash the vocabulary into at least this many buckets, 0 keeps it exact")
	salt := flag.Uint("salt", 0, "hashed vocabulary salt")
	flag.Parse()

	var docs [][]string
	var labels []int
	if *hamDir != "" && *spamDir != "" {
		var err error
		docs, labels, err = spam.LoadDirs(*hamDir, *spamDir)
		if err != nil {
			panic(err.Error())
		}
	} else {
		docs, labels = spam.Sample()
		println("no mail directories given, training on the built-in toy corpus")
	}
	println("documents:", len(docs))

	if *holdout > 0 && *holdout < len(docs) {
		rate, err := bayes.Holdout(docs, labels, *holdout, func(doc []string, got, want int) {
			fmt.Printf("misclassified as %d: %s\n", got, strings.Join(doc, " "))
		})
		if err != nil {
			panic(err.Error())
		}
		fmt.Printf("holdout error rate %f over %d documents\n", rate, *holdout)
	}

	var vocab bayes.Vocab
	if *buckets > 0 {
		hv, err := bayes.NewHashingVocab(*buckets, uint32(*salt))
		if err != nil {
			panic(err.Error())
		}
		vocab = hv
	} else {
		vocab = bayes.NewVocabulary(docs)
	}
	println("feature width:", vocab.Len())

	model, err := bayes.TrainDocs(vocab, docs, labels)
	if err != nil {
		panic(err.Error())
	}
	if err := bayes.WriteCompressedModelToFile(*dstmodel, vocab, model); err != nil {
		panic(err.Error())
	}
	println("model written to", *dstmodel)
}
