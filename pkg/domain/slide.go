package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultTitle は title フィールドが省略されたスライドに与える見出しです。
const DefaultTitle = "No Title"

// BulletGlyph は箇条書きの各行に前置する記号です。
const BulletGlyph = "•"

// SlideRecord は入力台本の1枚分のスライド定義を保持します。
// Deck として読み込まれた後は読み取り専用で、描画順は Deck 内の並び順です。
type SlideRecord struct {
	Title       string       `json:"title"`
	Content     SlideContent `json:"content"`
	ImagePrompt string       `json:"image_prompt"`
}

// Normalize は省略可能フィールドの既定値を確定させます。
// 既定値の解決は読み込み時に一度だけ行い、描画側での都度チェックを避けるのだ。
func (r *SlideRecord) Normalize() {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = DefaultTitle
	}
}

// Deck は1回の生成を駆動するスライド定義の順序付き列です。
// スライド間の関係は並び順のみで、相互参照は持ちません。
type Deck []SlideRecord

// SlideContent は本文の2形態（プレーン文字列 / 文字列リスト）を表す
// タグ付きバリアントです。JSON の文字列・配列のどちらからも復元できます。
type SlideContent struct {
	text   string
	items  []string
	isList bool
}

// PlainText はプレーン文字列形式の本文を生成します。
func PlainText(text string) SlideContent {
	return SlideContent{text: text}
}

// BulletList は箇条書き形式の本文を生成します。要素の順序は保持されます。
func BulletList(items []string) SlideContent {
	return SlideContent{items: items, isList: true}
}

// IsList は本文が箇条書き形式かどうかを返します。
func (c SlideContent) IsList() bool { return c.isList }

// Items は箇条書きの要素列を返します。プレーン形式では nil です。
func (c SlideContent) Items() []string { return c.items }

// Text はプレーン形式の本文を返します。箇条書き形式では空文字です。
func (c SlideContent) Text() string { return c.text }

// IsEmpty は描画すべき本文を持たない場合に true を返します。
func (c SlideContent) IsEmpty() bool {
	if c.isList {
		return len(c.items) == 0
	}
	return c.text == ""
}

// DisplayText は本文を表示用テキストへ正規化する唯一の入口です。
// 箇条書きは各要素を「• 」付きの1行として順序どおりに改行で連結し、
// プレーン文字列はそのまま返します。
func (c SlideContent) DisplayText() string {
	if !c.isList {
		return c.text
	}
	lines := make([]string, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, BulletGlyph+" "+item)
	}
	return strings.Join(lines, "\n")
}

// UnmarshalJSON は JSON 文字列と文字列配列の両方を受理します。
// それ以外の型は形式エラーとして報告します。
func (c *SlideContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = PlainText(text)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*c = BulletList(items)
		return nil
	}

	return fmt.Errorf("content は文字列または文字列の配列である必要があります: %s", string(data))
}

// MarshalJSON は読み込んだ形態をそのまま書き戻します。
func (c SlideContent) MarshalJSON() ([]byte, error) {
	if c.isList {
		return json.Marshal(c.items)
	}
	return json.Marshal(c.text)
}
