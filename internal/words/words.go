// internal/words/words.go
//
// Bundled word list management.
//
// Responsibilities:
//   - Load the answer list from a file named by WORDS_ANSWERS_FILE, or fall
//     back to the list embedded in the assets package.
//   - Supply Answers and Stats.
//   - Normalize arbitrary word lists (lowercase, trimmed, 5 letters a–z).
//
// The bundled list is the Word Source's last resort when the remote
// endpoint cannot be reached, and seeds the server's catalog.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/assets"
	"github.com/robalobadob/wordle/internal/game"
)

// ErrEmptyList is returned when a list holds no usable words.
var ErrEmptyList = errors.New("words: list is empty")

var (
	initOnce   sync.Once
	answers    []string
	initialErr error
)

// Init loads the bundled list exactly once. path overrides the embedded
// list when non-empty.
func Init(path string) error {
	initOnce.Do(func() {
		var list []string
		var err error
		if path != "" {
			list, err = ReadFile(path)
		} else {
			list, err = assets.AnswersList()
			list = Normalize(list)
		}
		if err != nil {
			initialErr = err
			return
		}
		answers = list
		if len(answers) == 0 {
			initialErr = ErrEmptyList
		}
	})
	return initialErr
}

// ReadFile loads one word per line, keeping only valid 5-letter words.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w := normalize(sc.Text()); w != "" {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// Normalize lowercases and trims each entry and drops anything that is not
// exactly five letters a–z. Duplicates are removed; order is kept.
func Normalize(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, s := range list {
		w := normalize(s)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func normalize(s string) string {
	w := strings.ToLower(strings.TrimSpace(s))
	if !game.ValidWord(w) {
		return ""
	}
	return w
}

// Pick returns a uniformly random element of list using crypto/rand.
func Pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyList
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[n.Int64()], nil
}

// Answers returns the bundled answer list.
func Answers() []string {
	return answers
}

// Stats returns the number of bundled answers.
func Stats() int {
	return len(answers)
}
