package generator

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/time/rate"
)

// slideAspectRatio はスライドの視覚領域に合わせた生成画像の縦横比です。
const slideAspectRatio = "16:9"

// defaultImageMimeType はバックエンドが MIME タイプを返さなかった場合の既定値です。
const defaultImageMimeType = "image/png"

// ImageBackend は画像生成バックエンドの最小インターフェースです。
// gemini-image-kit の ImageGenerator がこれを満たします。
type ImageBackend interface {
	GenerateMangaPanel(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// BlobWriter は取得した画像バイト列をコンテンツストアへ保存します。
// go-remote-io の OutputWriter がこれを満たします。
type BlobWriter interface {
	Write(ctx context.Context, path string, reader io.Reader, mimeType string) error
}

// SlideImageAcquirer は1スライド分の画像取得を担います。
// バックエンドへの試行は常に1回だけで、リトライは行いません。
type SlideImageAcquirer struct {
	backend     ImageBackend
	writer      BlobWriter
	limiter     *rate.Limiter // 逐次呼び出しの間隔制御（nil 可）
	styleSuffix string        // バックエンドへ送るプロンプトにのみ付加する画風指定
}

// NewSlideImageAcquirer は SlideImageAcquirer の新しいインスタンスを生成します。
func NewSlideImageAcquirer(backend ImageBackend, writer BlobWriter, limiter *rate.Limiter, styleSuffix string) *SlideImageAcquirer {
	return &SlideImageAcquirer{
		backend:     backend,
		writer:      writer,
		limiter:     limiter,
		styleSuffix: styleSuffix,
	}
}

// Acquire はプロンプトに対して生成リクエストを1回だけ発行し、結末を分類して返します。
// 前提条件はプロンプト非空（空の場合は呼び出し側がこのコンポーネントを丸ごとスキップします）。
// エラーはこの境界を越えません。1スライドの画像失敗が Deck 全体を
// 中断させることは決してないのだ。
func (a *SlideImageAcquirer) Acquire(ctx context.Context, prompt, destination string) domain.ImageOutcome {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return domain.FailedOutcome(err.Error())
		}
	}

	slog.Info("画像を生成しています", "prompt", truncatePrompt(prompt), "destination", destination)

	resp, err := a.backend.GenerateMangaPanel(ctx, imagedom.ImageGenerationRequest{
		Prompt:      a.buildPrompt(prompt),
		AspectRatio: slideAspectRatio,
	})
	if err != nil {
		slog.Warn("画像生成に失敗しました", "prompt", truncatePrompt(prompt), "error", err)
		return domain.FailedOutcome(err.Error())
	}

	if resp == nil || len(resp.Data) == 0 {
		slog.Warn("応答に画像データが含まれていませんでした", "prompt", truncatePrompt(prompt))
		return domain.NotProducedOutcome()
	}

	mimeType := resp.MimeType
	if mimeType == "" {
		mimeType = defaultImageMimeType
	}

	if err := a.writer.Write(ctx, destination, bytes.NewReader(resp.Data), mimeType); err != nil {
		slog.Warn("画像の保存に失敗しました", "path", destination, "error", err)
		return domain.FailedOutcome(err.Error())
	}

	return domain.AcquiredOutcome(destination, resp.Data)
}

// buildPrompt はバックエンド向けのプロンプトを組み立てます。
// 画風サフィックスは生成リクエストにのみ影響し、記録用のプロンプト文字列
// （スピーカーノートやプレースホルダーの見出し）には現れません。
func (a *SlideImageAcquirer) buildPrompt(prompt string) string {
	if a.styleSuffix == "" {
		return prompt
	}
	return prompt + ", " + a.styleSuffix
}

// truncatePrompt はログ出力用にプロンプトを短縮します。
func truncatePrompt(prompt string) string {
	const limit = 30
	runes := []rune(strings.TrimSpace(prompt))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
