package service

import (
	"strings"
	"unicode/utf8"
)

// ChunkConfig controls how extracted text is windowed for embedding.
type ChunkConfig struct {
	WindowSize int
	Overlap    int
}

// DefaultChunkConfig provides sane defaults for chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		WindowSize: 1000,
		Overlap:    200,
	}
}

// chunkText splits text on newlines and greedily accumulates segments into
// windows of at most WindowSize characters. Each new window is seeded with
// up to Overlap trailing characters of whole segments from the previous one
// so no semantic unit is irrecoverably split across a boundary. The result
// is fully materialized; the index needs the complete batch.
func chunkText(text string, cfg ChunkConfig) []string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil
	}
	if cfg.WindowSize <= 0 {
		cfg = DefaultChunkConfig()
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	if cfg.Overlap >= cfg.WindowSize {
		cfg.Overlap = cfg.WindowSize - 1
	}

	segments := strings.Split(clean, "\n")
	chunks := make([]string, 0, 8)
	var window []string
	windowLen := 0

	emit := func(c string) {
		if strings.TrimSpace(c) != "" {
			chunks = append(chunks, c)
		}
	}

	for _, seg := range segments {
		segLen := utf8.RuneCountInString(seg)

		// A single segment longer than the window becomes its own oversized
		// chunk; truncating or dropping it would lose content.
		if segLen > cfg.WindowSize {
			if len(window) > 0 {
				emit(strings.Join(window, "\n"))
				window, windowLen = nil, 0
			}
			emit(seg)
			continue
		}

		joinLen := segLen
		if windowLen > 0 {
			joinLen++ // rejoining newline
		}
		if len(window) > 0 && windowLen+joinLen > cfg.WindowSize {
			emit(strings.Join(window, "\n"))
			window, windowLen = retainOverlap(window, segLen, cfg)
			joinLen = segLen
			if windowLen > 0 {
				joinLen++
			}
		}
		window = append(window, seg)
		windowLen += joinLen
	}

	if len(window) > 0 {
		emit(strings.Join(window, "\n"))
	}

	return chunks
}

// retainOverlap keeps trailing segments of an emitted window to seed the
// next one, bounded by the overlap budget and by what still lets the next
// segment of nextLen characters fit inside the window.
func retainOverlap(window []string, nextLen int, cfg ChunkConfig) ([]string, int) {
	total := 0
	start := len(window)
	for i := len(window) - 1; i >= 0; i-- {
		add := utf8.RuneCountInString(window[i])
		if total > 0 {
			add++
		}
		if total+add > cfg.Overlap {
			break
		}
		if total+add+1+nextLen > cfg.WindowSize {
			break
		}
		total += add
		start = i
	}
	if start == len(window) {
		return nil, 0
	}
	kept := make([]string, len(window)-start)
	copy(kept, window[start:])
	return kept, total
}
