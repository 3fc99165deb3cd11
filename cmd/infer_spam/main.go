package main

import "bufio"
import "flag"
import "fmt"
import "os"
import "strings"

import "github.com/neurlang/autoencoder/bayes"
import "github.com/neurlang/autoencoder/datasets/spam"

func classify(vocab bayes.Vocab, model *bayes.Model, text string) {
	tokens := spam.Tokenize(text)
	if len(tokens) == 0 {
		println("no usable tokens in:", text)
		return
	}
	class, err := model.ClassifyDoc(vocab, tokens)
	if err != nil {
		panic(err.Error())
	}
	verdict := "ham"
	if class == spam.Spam {
		verdict = "spam"
	}
	fmt.Printf("%s: %s\n", verdict, strings.Join(tokens, " "))
}

func main() {

	dstmodel := flag.String("dstmodel", "spam.json.t.lzw", "trained model .json.t.lzw file")
	flag.Parse()

	vocab, model, err := bayes.ReadCompressedModelFromFile(*dstmodel)
	if err != nil {
		panic(err.Error())
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			classify(vocab, model, arg)
		}
		return
	}

	// no arguments, one document per stdin line
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		classify(vocab, model, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		panic(err.Error())
	}
}
