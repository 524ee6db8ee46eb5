package extract

import (
	"context"
	"strings"
	"unicode"

	"sleuth/pkg/loader"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkoukk/tiktoken-go"
)

const defaultChunkTokens = 1200

type articleChunk struct {
	id        string
	articleID string
	start     int
	end       int
	text      string
}

func getChunksFromArticle(
	ctx context.Context,
	article loader.Article,
	encoder string,
) ([]articleChunk, error) {
	textBytes, err := article.GetText(ctx)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(textBytes))
	if text == "" {
		return nil, nil
	}

	maxTokens := article.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultChunkTokens
	}

	return transformIntoChunks(text, article.ID, encoder, maxTokens)
}

// transformIntoChunks groups sentences into token-bounded chunks. A single
// sentence longer than maxTokens becomes its own chunk.
func transformIntoChunks(
	text string,
	articleID string,
	encoder string,
	maxTokens int,
) ([]articleChunk, error) {
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, err
	}

	sentences := splitIntoSentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	var chunks []articleChunk
	chunkStart := -1
	chunkEnd := -1

	flushChunk := func() error {
		if chunkStart < 0 || chunkEnd <= chunkStart {
			return nil
		}
		cID, err := gonanoid.New()
		if err != nil {
			return err
		}

		var chunkText strings.Builder
		for i := chunkStart; i < chunkEnd; i++ {
			if i > chunkStart {
				chunkText.WriteString(" ")
			}
			chunkText.WriteString(sentences[i])
		}

		chunk := articleChunk{
			id:        cID,
			articleID: articleID,
			start:     chunkStart,
			end:       chunkEnd,
			text:      strings.TrimSpace(chunkText.String()),
		}
		chunks = append(chunks, chunk)
		chunkStart = -1
		chunkEnd = -1
		return nil
	}

	for i := range sentences {
		if chunkStart < 0 {
			chunkStart = i
			chunkEnd = i + 1
			continue
		}

		var testText strings.Builder
		for j := chunkStart; j <= i; j++ {
			if j > chunkStart {
				testText.WriteString(" ")
			}
			testText.WriteString(sentences[j])
		}

		testTokens := len(enc.Encode(testText.String(), nil, nil))

		if testTokens <= maxTokens {
			chunkEnd = i + 1
		} else {
			if err := flushChunk(); err != nil {
				return nil, err
			}
			chunkStart = i
			chunkEnd = i + 1
		}
	}

	if err := flushChunk(); err != nil {
		return nil, err
	}

	return chunks, nil
}

// splitIntoSentences breaks article text into sentences. Blank lines always
// terminate the current sentence so paragraph boundaries survive chunking.
func splitIntoSentences(text string) []string {
	lines := strings.Split(text, "\n")
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}

		for _, sentence := range splitLineIntoSentences(trimmed) {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(sentence)

			s := strings.TrimSpace(sentence)
			if strings.HasSuffix(s, ".") ||
				strings.HasSuffix(s, "!") ||
				strings.HasSuffix(s, "?") {
				flush()
			}
		}
	}

	flush()

	return sentences
}

func splitLineIntoSentences(line string) []string {
	var sentences []string
	var current strings.Builder

	for i := 0; i < len(line); i++ {
		current.WriteByte(line[i])

		if line[i] == '.' || line[i] == '!' || line[i] == '?' {
			// "1. First item" style listings don't end a sentence
			if i > 0 && unicode.IsDigit(rune(line[i-1])) &&
				i+1 < len(line) && line[i+1] == ' ' {
				continue
			}

			j := i + 1
			for j < len(line) && (line[j] == '.' || line[j] == '!' || line[j] == '?') {
				current.WriteByte(line[j])
				j++
			}

			// trailing quotes and brackets belong to the sentence
			for j < len(line) && (line[j] == '"' || line[j] == '\'' || line[j] == ')' ||
				line[j] == ']' || line[j] == '}') {
				current.WriteByte(line[j])
				j++
			}

			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
			i = j - 1
		}
	}

	remaining := strings.TrimSpace(current.String())
	if remaining != "" {
		sentences = append(sentences, remaining)
	}

	return sentences
}
