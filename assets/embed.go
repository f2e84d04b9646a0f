// assets/embed.go
//
// Embedded assets: the bundled answer list, catalog migrations and the
// browser client.

package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed answers.txt
var FS embed.FS

// Migrations holds the catalog schema, applied in lexical order.
//
//go:embed sql/*.sql
var Migrations embed.FS

//go:embed web
var web embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the bundled answer words, lowercased, comments skipped.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// Web returns the browser client files rooted at web/.
func Web() fs.FS {
	sub, err := fs.Sub(web, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
