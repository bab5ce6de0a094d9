package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/semgroup"
	"github.com/spf13/cobra"

	"github.com/dlclark/re2compat"
)

var searchCmd = &cobra.Command{
	Use:   "search PATTERN [FILE...]",
	Short: "print every match of a pattern in files or stdin",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Bool("bytes", false, "match raw bytes instead of text")
	searchCmd.Flags().Int("concurrency", 4, "files scanned in parallel")
}

// hit is one match found on a line.
type hit struct {
	line       int
	start, end int
	text       string
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, flags, err := newCompiler(cmd)
	if err != nil {
		return err
	}
	useBytes, _ := cmd.Flags().GetBool("bytes")

	var scan func(r io.Reader) ([]hit, error)
	if useBytes {
		p, err := re2compat.CompileWith(c, []byte(args[0]), flags)
		if err != nil {
			return err
		}
		scan = func(r io.Reader) ([]hit, error) { return scanLines(p, r, func(b []byte) []byte { return b }) }
	} else {
		p, err := re2compat.CompileWith(c, args[0], flags)
		if err != nil {
			return err
		}
		scan = func(r io.Reader) ([]hit, error) { return scanLines(p, r, func(b []byte) string { return string(b) }) }
	}

	out := cmd.OutOrStdout()
	files := args[1:]
	if len(files) == 0 {
		hits, err := scan(cmd.InOrStdin())
		printHits(out, "", hits)
		return err
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		concurrency = 1
	}
	var (
		mu      sync.Mutex
		results = make([][]hit, len(files))
	)
	sg := semgroup.NewGroup(cmd.Context(), int64(concurrency))
	for i, path := range files {
		sg.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			hits, err := scan(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug().Str("path", path).Int("matches", len(hits)).Msg("scanned file")
			mu.Lock()
			results[i] = hits
			mu.Unlock()
			return nil
		})
	}
	err = sg.Wait()
	for i, path := range files {
		printHits(out, path, results[i])
	}
	return err
}

func scanLines[T re2compat.Text](p *re2compat.Pattern[T], r io.Reader, conv func([]byte) T) ([]hit, error) {
	var hits []hit
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		it := p.FindIter(conv(bytes.Clone(sc.Bytes())))
		for m, err := range it.All() {
			if err != nil {
				return hits, err
			}
			hits = append(hits, hit{line: line, start: m.Start(), end: m.End(), text: string(m.Text())})
		}
	}
	return hits, sc.Err()
}

func printHits(w io.Writer, path string, hits []hit) {
	var b strings.Builder
	for _, h := range hits {
		if path != "" {
			b.WriteString(path)
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%d:%d-%d: %s\n", h.line, h.start, h.end, h.text)
	}
	io.WriteString(w, b.String())
}
