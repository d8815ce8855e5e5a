package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"
)

// stubReader はテスト用のインメモリ InputReader です。
type stubReader struct {
	files map[string]string
}

func (s *stubReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

const sampleSlides = `[
	{"title": "Intro", "content": ["A", "B"], "image_prompt": "sunrise"},
	{"content": "plain body"},
	{"title": "Last"}
]`

func TestDeckLoader_Load(t *testing.T) {
	t.Run("ルートが配列の台本を読み込めるのだ", func(t *testing.T) {
		l := NewDeckLoader(&stubReader{files: map[string]string{"slides.json": sampleSlides}})
		deck, err := l.Load(context.Background(), "slides.json")
		if err != nil {
			t.Fatalf("Load失敗なのだ: %v", err)
		}
		if len(deck) != 3 {
			t.Fatalf("スライド数が一致しないのだ: %d", len(deck))
		}
		if deck[0].Title != "Intro" || deck[0].ImagePrompt != "sunrise" {
			t.Errorf("先頭スライドの内容が違うのだ: %+v", deck[0])
		}
		if !reflect.DeepEqual(deck[0].Content.Items(), []string{"A", "B"}) {
			t.Errorf("箇条書きの順序が保持されていないのだ: %v", deck[0].Content.Items())
		}
	})

	t.Run("slidesフィールドで包まれた台本も同一のDeckになるのだ", func(t *testing.T) {
		wrapped := fmt.Sprintf(`{"slides": %s}`, sampleSlides)
		bare := NewDeckLoader(&stubReader{files: map[string]string{"a.json": sampleSlides}})
		wrap := NewDeckLoader(&stubReader{files: map[string]string{"b.json": wrapped}})

		deckA, err := bare.Load(context.Background(), "a.json")
		if err != nil {
			t.Fatalf("配列ルートのLoad失敗なのだ: %v", err)
		}
		deckB, err := wrap.Load(context.Background(), "b.json")
		if err != nil {
			t.Fatalf("オブジェクトルートのLoad失敗なのだ: %v", err)
		}
		if !reflect.DeepEqual(deckA, deckB) {
			t.Error("2形式から同一のDeckが得られないのだ")
		}
	})

	t.Run("省略フィールドの既定値が読み込み時に確定するのだ", func(t *testing.T) {
		l := NewDeckLoader(&stubReader{files: map[string]string{"slides.json": sampleSlides}})
		deck, err := l.Load(context.Background(), "slides.json")
		if err != nil {
			t.Fatalf("Load失敗なのだ: %v", err)
		}
		if deck[1].Title != "No Title" {
			t.Errorf("タイトルの既定値が適用されないのだ: %q", deck[1].Title)
		}
		if deck[2].ImagePrompt != "" || !deck[2].Content.IsEmpty() {
			t.Errorf("省略された content / image_prompt が空になっていないのだ: %+v", deck[2])
		}
	})

	t.Run("想定外のルート形式は致命的エラーなのだ", func(t *testing.T) {
		for name, content := range map[string]string{
			"数値ルート":        `42`,
			"文字列ルート":       `"not a deck"`,
			"slides欠落":      `{"pages": []}`,
			"slidesが配列ではない": `{"slides": 7}`,
			"空入力":          ``,
		} {
			l := NewDeckLoader(&stubReader{files: map[string]string{"bad.json": content}})
			_, err := l.Load(context.Background(), "bad.json")
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("%s: ErrInvalidFormat が返らないのだ: %v", name, err)
			}
		}
	})

	t.Run("ソース欠如は致命的エラーとして伝播するのだ", func(t *testing.T) {
		l := NewDeckLoader(&stubReader{files: map[string]string{}})
		_, err := l.Load(context.Background(), "missing.json")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("not-found が伝播しないのだ: %v", err)
		}
	})
}
