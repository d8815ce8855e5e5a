package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-slide-kit/pkg/generator"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// 画像キャッシュの寿命設定なのだ。
const (
	defaultCacheExpiration = 5 * time.Minute
	cacheCleanupInterval   = 15 * time.Minute
	defaultTTL             = 5 * time.Minute
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildImageAcquirer はスライド画像の取得コンポーネントを構築します。
// レートリミッタは逐次処理の呼び出し間隔を空けるためのもので、
// バースト1で1枚ずつ待つのだ。
func BuildImageAcquirer(appCtx *AppContext) (*generator.SlideImageAcquirer, error) {
	core, err := initializeCore(appCtx)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(appCtx.Config.GeminiImageModel, core)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(appCtx.Options.RateInterval), 1)
	return generator.NewSlideImageAcquirer(imgGen, appCtx.Writer, limiter, appCtx.Config.StyleSuffix), nil
}

// initializeCore 提供された依存関係で構成された GeminiImageCore インスタンスを初期化して返します。
func initializeCore(appCtx *AppContext) (*imagekit.GeminiImageCore, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		appCtx.aiClient,
		appCtx.Reader,
		appCtx.httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	return core, nil
}
