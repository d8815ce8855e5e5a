// Package composer は1枚のスライド定義を GoPPT のスライドへ組み立てます。
//
// レイアウトは固定で、タイトル領域・本文領域（左半分）・視覚領域（右半分）・
// スピーカーノートを常にこの順で配置します。視覚領域は取得済み画像か、
// プロンプトを見出しに持つプレースホルダー矩形のどちらかになります。
package composer

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	// 生成画像の寸法取得用デコーダ登録
	_ "image/jpeg"
	_ "image/png"

	"github.com/shouni/go-slide-kit/pkg/asset"
	"github.com/shouni/go-slide-kit/pkg/domain"

	ppt "github.com/VantageDataChat/GoPPT"
)

// レイアウト定数（インチ）。キャンバスは 13.333 x 7.5 の 16:9 を前提とします。
const (
	titleLeft   = 0.5
	titleTop    = 0.3
	titleWidth  = 12.0
	titleHeight = 1.0

	contentLeft   = 0.5
	contentTop    = 1.5
	contentWidth  = 6.0
	contentHeight = 5.0

	visualLeft   = 7.0
	visualTop    = 1.5
	visualWidth  = 5.8
	visualHeight = 4.0
)

// フォントサイズ（ポイント）。
const (
	titleFontSize   = 40
	contentFontSize = 20
	captionFontSize = 14
)

const (
	notesPrefix     = "Image Prompt: "
	captionNoPrompt = "No Image Prompt"
)

// プレースホルダーの配色。
var (
	placeholderFill   = ppt.NewColor("EEEEEE")
	placeholderBorder = ppt.NewColor("888888")
)

// SlideComposer は SlideRecord と ImageOutcome から1枚のスライドを組み立てます。
// すべての条件は視覚領域のどちらかの分岐に解決され、エラーがこの
// コンポーネントから漏れることはありません。
type SlideComposer struct{}

// NewSlideComposer は SlideComposer の新しいインスタンスを生成します。
func NewSlideComposer() *SlideComposer {
	return &SlideComposer{}
}

// Compose は固定の順序でスライドの各領域を配置します。
// スピーカーノートは画像の成否にかかわらず必ず書き込まれます。
// ノートは「何を要求したか」の監査証跡なのだ。
func (c *SlideComposer) Compose(slide *ppt.Slide, rec domain.SlideRecord, outcome domain.ImageOutcome) {
	c.composeTitle(slide, rec.Title)
	c.composeContent(slide, rec.Content)
	c.composeVisual(slide, rec.ImagePrompt, outcome)
	slide.SetNotes(notesPrefix + rec.ImagePrompt)
}

// composeTitle は上端のタイトル領域を配置します。
func (c *SlideComposer) composeTitle(slide *ppt.Slide, title string) {
	box := slide.CreateRichTextShape()
	box.SetName("Title")
	box.SetPosition(ppt.Inch(titleLeft), ppt.Inch(titleTop))
	box.SetSize(ppt.Inch(titleWidth), ppt.Inch(titleHeight))
	box.CreateTextRun(title).GetFont().SetBold(true).SetSize(titleFontSize)
}

// composeContent はタイトル下・左半分の本文領域を配置します。
// 正規化済みの表示テキストを1行1段落として流し込みます。
func (c *SlideComposer) composeContent(slide *ppt.Slide, content domain.SlideContent) {
	box := slide.CreateRichTextShape()
	box.SetName("Content")
	box.SetPosition(ppt.Inch(contentLeft), ppt.Inch(contentTop))
	box.SetSize(ppt.Inch(contentWidth), ppt.Inch(contentHeight))
	box.SetWordWrap(true)

	for i, line := range strings.Split(content.DisplayText(), "\n") {
		para := box.GetActiveParagraph()
		if i > 0 {
			para = box.CreateParagraph()
		}
		para.CreateTextRun(line).GetFont().SetSize(contentFontSize)
	}
}

// composeVisual は右半分の視覚領域を配置します。
// 画像が取得済みで、かつ保存ファイルが描画時点でも存在する場合のみ画像を
// 埋め込み、それ以外はすべてプレースホルダーに落とします。
func (c *SlideComposer) composeVisual(slide *ppt.Slide, prompt string, outcome domain.ImageOutcome) {
	if outcome.Acquired() && c.placeImage(slide, outcome) {
		return
	}
	c.placePlaceholder(slide, prompt)
}

// placeImage は保存済み画像を固定幅・縦横比維持で配置します。
// 配置できた場合に true を返します。
func (c *SlideComposer) placeImage(slide *ppt.Slide, outcome domain.ImageOutcome) bool {
	data := outcome.Data

	if !asset.IsRemote(outcome.Path) {
		// ローカルのコンテンツストアでは描画時点の実在確認を行い、
		// 保存されたファイルの内容をそのまま埋め込みます。
		if _, err := os.Stat(outcome.Path); err != nil {
			return false
		}
		persisted, err := os.ReadFile(outcome.Path)
		if err != nil {
			return false
		}
		data = persisted
	}
	if len(data) == 0 {
		return false
	}

	pic := slide.CreateDrawingShape()
	pic.SetName("SlideImage")
	pic.SetImageData(data, "image/png")
	pic.SetPosition(ppt.Inch(visualLeft), ppt.Inch(visualTop))
	pic.SetSize(ppt.Inch(visualWidth), scaledHeight(data))
	return true
}

// scaledHeight は固定幅に対して縦横比を保つ高さ（EMU）を計算します。
// 寸法を読めないバイト列は既定の帯の高さで埋め込みます（寛容な受理）。
func scaledHeight(data []byte) int64 {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 {
		return ppt.Inch(visualHeight)
	}
	return ppt.Inch(visualWidth * float64(cfg.Height) / float64(cfg.Width))
}

// placePlaceholder は画像の代わりの決定的なプレースホルダーを配置します。
// 矩形の塗り・枠と、中央寄せ太字の見出しテキストの重ね合わせで構成します。
// GoPPT の AutoShape 本文は装飾を持てないため、見出しは RichTextShape で重ねます。
func (c *SlideComposer) placePlaceholder(slide *ppt.Slide, prompt string) {
	rect := slide.CreateAutoShape()
	rect.SetAutoShapeType(ppt.AutoShapeRectangle)
	rect.SetName("ImagePlaceholder")
	rect.SetPosition(ppt.Inch(visualLeft), ppt.Inch(visualTop))
	rect.SetSize(ppt.Inch(visualWidth), ppt.Inch(visualHeight))
	rect.GetFill().SetSolid(placeholderFill)
	rect.GetBorder().SetSolidFill(placeholderBorder).SetWidth(12700) // 1pt

	caption := slide.CreateRichTextShape()
	caption.SetName("PlaceholderCaption")
	caption.SetPosition(ppt.Inch(visualLeft), ppt.Inch(visualTop))
	caption.SetSize(ppt.Inch(visualWidth), ppt.Inch(visualHeight))
	caption.SetWordWrap(true)
	caption.SetTextAnchor(ppt.TextAnchorMiddle)

	for i, line := range strings.Split(PlaceholderCaption(prompt), "\n") {
		para := caption.GetActiveParagraph()
		if i > 0 {
			para = caption.CreateParagraph()
		}
		para.GetAlignment().SetHorizontal(ppt.HorizontalCenter)
		para.CreateTextRun(line).GetFont().SetBold(true).SetSize(captionFontSize)
	}
}

// PlaceholderCaption はプレースホルダーに表示する見出しテキストを返します。
// プロンプトが空の場合は専用の番兵文字列になります。
func PlaceholderCaption(prompt string) string {
	if prompt == "" {
		return captionNoPrompt
	}
	return fmt.Sprintf("Image Placeholder\n\nPrompt:\n%s", prompt)
}
