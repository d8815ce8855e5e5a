// Package runner は Deck 全体のパイプライン駆動を担います。
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shouni/go-slide-kit/pkg/asset"
	"github.com/shouni/go-slide-kit/pkg/composer"
	"github.com/shouni/go-slide-kit/pkg/domain"

	ppt "github.com/VantageDataChat/GoPPT"
)

// timestampLayout は成果物ファイル名に付与する秒精度のタイムスタンプ書式です。
// 繰り返し実行しても成果物が衝突しないようにします。
const timestampLayout = "20060102_150405"

// ImageAcquirer は1スライド分の画像取得を行います。
// nil の場合（認証トークン欠如）は一切のネットワーク試行なしで
// 全スライドがプレースホルダーになります。
type ImageAcquirer interface {
	Acquire(ctx context.Context, prompt, destination string) domain.ImageOutcome
}

// DeckRunner は Deck を順番どおりに1枚ずつ組み立て、最後に1回だけ保存します。
// ドキュメントシンクは実行の間この Runner が排他的に所有します。
type DeckRunner struct {
	acquirer   ImageAcquirer
	composer   *composer.SlideComposer
	imageDir   string
	outputBase string
}

// NewDeckRunner は DeckRunner の新しいインスタンスを生成します。
func NewDeckRunner(acquirer ImageAcquirer, comp *composer.SlideComposer, imageDir, outputBase string) *DeckRunner {
	return &DeckRunner{
		acquirer:   acquirer,
		composer:   comp,
		imageDir:   imageDir,
		outputBase: outputBase,
	}
}

// Run は Deck 全体を処理して保存済み成果物のパスを返します。
// 各 SlideRecord は画像取得の結末にかかわらず必ず1枚のスライドを生み、
// 並び順も入力どおりです。致命的なのは保存失敗と出力先の準備失敗のみです。
func (r *DeckRunner) Run(ctx context.Context, deck domain.Deck) (string, error) {
	prs := ppt.New()
	// キャンバスの縦横比はドキュメント全体で一度だけ固定する
	prs.GetLayout().SetLayout(ppt.LayoutScreen16x9)

	if err := r.ensureImageDir(); err != nil {
		return "", err
	}

	imageBase, err := asset.ResolveOutputPath(r.imageDir, asset.DefaultSlideImageName)
	if err != nil {
		return "", fmt.Errorf("コンテンツストアのパス解決に失敗しました: %w", err)
	}

	for i, rec := range deck {
		slog.Info("スライドを組み立てています", "slide", i+1, "total", len(deck), "title", rec.Title)

		outcome := r.acquireImage(ctx, rec, imageBase, i+1)

		slide := prs.GetActiveSlide()
		if i > 0 {
			slide = prs.CreateSlide()
		}
		r.composer.Compose(slide, rec, outcome)
	}

	// GoPPT の New() は空のスライドを1枚持つため、空の Deck では
	// それを取り除いてレコード数 == スライド数の不変条件を守る
	if len(deck) == 0 {
		if err := prs.RemoveSlideByIndex(0); err != nil {
			return "", fmt.Errorf("既定スライドの除去に失敗しました: %w", err)
		}
	}

	outputPath := fmt.Sprintf("%s_%s.pptx", r.outputBase, time.Now().Format(timestampLayout))
	if err := prs.Save(outputPath); err != nil {
		return "", fmt.Errorf("プレゼンテーションの保存に失敗しました: %w", err)
	}

	return outputPath, nil
}

// acquireImage は前提条件（取得コンポーネントが配線済み、かつプロンプト非空）を
// 満たす場合のみ画像取得を呼び出します。満たさない場合はネットワーク試行なしで
// NotProduced に確定します。
func (r *DeckRunner) acquireImage(ctx context.Context, rec domain.SlideRecord, imageBase string, position int) domain.ImageOutcome {
	if r.acquirer == nil || rec.ImagePrompt == "" {
		return domain.NotProducedOutcome()
	}

	destination, err := asset.GenerateIndexedPath(imageBase, position)
	if err != nil {
		slog.Warn("画像の保存先パス生成に失敗しました", "slide", position, "error", err)
		return domain.FailedOutcome(err.Error())
	}

	return r.acquirer.Acquire(ctx, rec.ImagePrompt, destination)
}

// ensureImageDir はローカルのコンテンツストアディレクトリを初回利用時に作成します。
// リモートストア（gs:// など）はライター側が面倒を見るため何もしません。
func (r *DeckRunner) ensureImageDir() error {
	if asset.IsRemote(r.imageDir) {
		return nil
	}
	if err := os.MkdirAll(r.imageDir, 0o755); err != nil {
		return fmt.Errorf("コンテンツストア '%s' の作成に失敗しました: %w", r.imageDir, err)
	}
	return nil
}
