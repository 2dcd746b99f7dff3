package specialties

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/specialties.txt
var dataFS embed.FS

const defaultListPath = "data/specialties.txt"

var (
	defaultOnce sync.Once
	defaultList []string
	defaultErr  error
)

// DefaultSpecialties returns the embedded specialty list, sorted and deduped.
func DefaultSpecialties() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		list, err := LoadSpecialties(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultList = list
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultList...), nil
}

// LoadSpecialties reads one specialty per line, skipping blanks, comments,
// and duplicates, and returns the sorted result.
func LoadSpecialties(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("specialties: missing reader")
	}

	scanner := bufio.NewScanner(r)
	list := make([]string, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(line)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		list = append(list, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Strings(list)
	return list, nil
}
