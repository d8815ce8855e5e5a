package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shouni/go-slide-kit/pkg/domain"
)

// ErrInvalidFormat は入力のルートが想定外の形だった場合に返されます。
// この状態は致命的で、スライド処理は一切開始されません。
var ErrInvalidFormat = errors.New("unexpected deck format")

// slidesField はオブジェクト形式のルートでスライド列を包むフィールド名です。
const slidesField = "slides"

// InputReader は台本データの読み込み元です。
// go-remote-io の InputReader がこれを満たします（ローカル / gs:// の両対応）。
type InputReader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// DeckLoader は外部の構造化データを正準の Deck へ正規化します。
type DeckLoader struct {
	reader InputReader
}

// NewDeckLoader は DeckLoader の新しいインスタンスを生成します。
func NewDeckLoader(reader InputReader) *DeckLoader {
	return &DeckLoader{reader: reader}
}

// Load は指定されたソースを丸ごと読み込み、Deck へ正規化して返します。
// 受理するルート形式は次の2つだけです:
//  1. ルート自体がスライド定義の配列
//  2. ルートがオブジェクトで、"slides" フィールドに配列を持つ
//
// それ以外のルート形式は ErrInvalidFormat、ソース欠如は読み込みエラーとして
// 呼び出し元へ伝播します（どちらも致命的で、部分的な読み込みは行いません）。
func (l *DeckLoader) Load(ctx context.Context, source string) (domain.Deck, error) {
	rc, err := l.reader.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("台本ファイル '%s' の読み込みに失敗しました: %w", source, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("台本ファイル '%s' の読み取りに失敗しました: %w", source, err)
	}

	deck, err := parseDeck(data)
	if err != nil {
		return nil, fmt.Errorf("台本ファイル '%s': %w", source, err)
	}

	for i := range deck {
		deck[i].Normalize()
	}
	return deck, nil
}

// parseDeck はルートの形を判別し、スライド定義の列を取り出します。
func parseDeck(data []byte) (domain.Deck, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: 入力が空です", ErrInvalidFormat)
	}

	switch trimmed[0] {
	case '[':
		var deck domain.Deck
		if err := json.Unmarshal(trimmed, &deck); err != nil {
			return nil, fmt.Errorf("スライド配列のデコードに失敗しました: %w", err)
		}
		return deck, nil

	case '{':
		var root map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("ルートオブジェクトのデコードに失敗しました: %w", err)
		}
		raw, ok := root[slidesField]
		if !ok {
			return nil, fmt.Errorf("%w: '%s' フィールドがありません", ErrInvalidFormat, slidesField)
		}
		var deck domain.Deck
		if err := json.Unmarshal(raw, &deck); err != nil {
			return nil, fmt.Errorf("%w: '%s' はスライド配列である必要があります", ErrInvalidFormat, slidesField)
		}
		return deck, nil

	default:
		return nil, fmt.Errorf("%w: ルートは配列またはオブジェクトである必要があります", ErrInvalidFormat)
	}
}
