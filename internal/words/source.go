// internal/words/source.go
//
// Word Source: fetches candidate words from a remote endpoint and picks
// the session's solution.
//
// Contract:
//   - One GET to a fixed URL; the body must be a JSON array of strings.
//   - Non-2xx, malformed JSON and lists without a usable word are errors.
//   - Resolve retries a failed fetch (once by default), then falls back to
//     the bundled list so a session never stays on the placeholder.

package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the public endpoint the game fetched its words from.
const DefaultURL = "https://www.api.frontendexpert.io/api/fe/wordle-words"

// ErrBadStatus is returned for a non-2xx response.
var ErrBadStatus = errors.New("words: unexpected status")

// maxBody bounds how much of a response is read.
const maxBody = 4 << 20

// Origin tells where a resolved word came from.
type Origin string

const (
	OriginNetwork  Origin = "network"
	OriginFallback Origin = "fallback"
)

// Resolution is the outcome of Resolve.
type Resolution struct {
	Word       string
	Origin     Origin
	Candidates int   // size of the list the word was drawn from
	Err        error // last fetch error when Origin is fallback
}

// Source fetches word lists over HTTP.
type Source struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration // per attempt; 0 means none
	Retries int           // extra attempts after the first

	// Fallback supplies the list used after all attempts fail.
	// Defaults to the bundled answers.
	Fallback func() []string
}

// NewSource returns a Source for url with the given per-attempt timeout
// and retry count.
func NewSource(url string, timeout time.Duration, retries int) *Source {
	if url == "" {
		url = DefaultURL
	}
	if retries < 0 {
		retries = 0
	}
	return &Source{
		URL:      url,
		Client:   http.DefaultClient,
		Timeout:  timeout,
		Retries:  retries,
		Fallback: Answers,
	}
}

// Fetch performs one request and returns the normalized candidate list.
func (s *Source) Fetch(ctx context.Context) ([]string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var raw []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	list := Normalize(raw)
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

// Resolve fetches a list and picks one word uniformly at random. After
// 1+Retries failed attempts it draws from the fallback list instead.
// An error is returned only when the fallback is empty too, or ctx ends.
func (s *Source) Resolve(ctx context.Context) (Resolution, error) {
	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		list, err := s.Fetch(ctx)
		if err == nil {
			w, err := Pick(list)
			if err != nil {
				return Resolution{}, err
			}
			log.Debug().Str("url", s.URL).Int("candidates", len(list)).Msg("word list fetched")
			return Resolution{Word: w, Origin: OriginNetwork, Candidates: len(list)}, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt+1).Str("url", s.URL).Msg("word fetch failed")
		if ctx.Err() != nil {
			return Resolution{}, ctx.Err()
		}
	}

	var fallback []string
	if s.Fallback != nil {
		fallback = Normalize(s.Fallback())
	}
	w, err := Pick(fallback)
	if err != nil {
		return Resolution{}, fmt.Errorf("no fallback after %w: %w", lastErr, err)
	}
	log.Warn().Err(lastErr).Int("candidates", len(fallback)).Msg("using bundled word list")
	return Resolution{Word: w, Origin: OriginFallback, Candidates: len(fallback), Err: lastErr}, nil
}
