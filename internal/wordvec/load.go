package wordvec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads a word2vec model. Files ending in .bin use the binary
// format; anything else is parsed as text.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word vectors: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".bin") {
		return ReadBinary(f)
	}
	return ReadText(f)
}

// ReadText parses the word2vec text format: an optional "count dim" header
// followed by one "word v1 v2 ..." line per word.
func ReadText(r io.Reader) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var words []string
	var vecs [][]float32
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				continue
			}
		}
		v := make([]float32, len(fields)-1)
		for i, s := range fields[1:] {
			x, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			v[i] = float32(x)
		}
		words = append(words, fields[0])
		vecs = append(vecs, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(words, vecs)
}

// ReadBinary parses the original word2vec binary format.
func ReadBinary(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)

	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var count, dim int
	if _, err := fmt.Sscanf(strings.TrimSpace(header), "%d %d", &count, &dim); err != nil {
		return nil, fmt.Errorf("parse header %q: %w", header, err)
	}

	words := make([]string, 0, count)
	vecs := make([][]float32, 0, count)
	buf := make([]byte, 4*dim)
	for i := 0; i < count; i++ {
		word, err := br.ReadString(' ')
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		word = strings.TrimLeft(strings.TrimSuffix(word, " "), "\n")
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		v := make([]float32, dim)
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
		}
		words = append(words, word)
		vecs = append(vecs, v)
	}
	return New(words, vecs)
}
