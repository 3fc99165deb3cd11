// Package spam loads tokenized mail corpora for the bayes classifier
package spam

import "fmt"
import "os"
import "path/filepath"
import "regexp"
import "strings"

// Ham and Spam are the two classes
const (
	Ham  = 0
	Spam = 1
)

var nonWord = regexp.MustCompile(`\W+`)

// Tokenize splits text on non-word runs, lowercases and drops tokens
// shorter than three characters
func Tokenize(text string) (tokens []string) {
	for _, tok := range nonWord.Split(text, -1) {
		if len(tok) > 2 {
			tokens = append(tokens, strings.ToLower(tok))
		}
	}
	return
}

// LoadDirs reads every .txt file under hamDir and spamDir into tokenized
// documents with class labels
func LoadDirs(hamDir, spamDir string) (docs [][]string, labels []int, err error) {
	for class, dir := range map[int]string{Ham: hamDir, Spam: spamDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("spam: cannot read mail dir '%s': %w", dir, err)
		}
		var found bool
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
				continue
			}
			raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, nil, fmt.Errorf("spam: cannot read mail '%s': %w", e.Name(), err)
			}
			tokens := Tokenize(string(raw))
			if len(tokens) == 0 {
				continue
			}
			docs = append(docs, tokens)
			labels = append(labels, class)
			found = true
		}
		if !found {
			return nil, nil, fmt.Errorf("spam: no usable .txt mails under '%s'", dir)
		}
	}
	return
}

// Sample returns the built-in six-post toy corpus with its class labels,
// class 1 marking the abusive posts
func Sample() (docs [][]string, labels []int) {
	docs = [][]string{
		{"my", "dog", "has", "flea", "problems", "help", "please"},
		{"maybe", "not", "take", "him", "to", "dog", "park", "stupid"},
		{"my", "dalmation", "is", "so", "cute", "i", "love", "him"},
		{"stop", "posting", "stupid", "worthless", "garbage"},
		{"mr", "licks", "ate", "my", "steak", "how", "to", "stop", "him"},
		{"quit", "buying", "worthless", "dog", "food", "stupid"},
	}
	labels = []int{Ham, Spam, Ham, Spam, Ham, Spam}
	return
}
