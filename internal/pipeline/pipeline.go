// Package pipeline は設定から成果物までの一連の実行を束ねるのだ。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/internal/builder"
	"github.com/shouni/go-slide-kit/internal/config"
	"github.com/shouni/go-slide-kit/pkg/composer"
	"github.com/shouni/go-slide-kit/pkg/loader"
	"github.com/shouni/go-slide-kit/pkg/runner"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// Execute はスライド定義の読み込みから .pptx の保存までを実行し、
// 保存済み成果物のパスを返すのだ。
//
// 認証トークンが見つからない場合は失敗ではなくプレースホルダーモードで
// 続行し、ネットワーク試行ゼロで全スライドを組み上げるのだ。
func Execute(ctx context.Context, cfg *config.Config) (string, error) {
	cfg.GeminiAPIKey = config.LoadCredential(cfg.Options.CredentialFile)
	if cfg.Options.ImageModel != "" {
		cfg.GeminiImageModel = cfg.Options.ImageModel
	}

	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return "", err
	}

	deck, err := loader.NewDeckLoader(appCtx.Reader).Load(ctx, cfg.Options.SlidesFile)
	if err != nil {
		return "", fmt.Errorf("スライド定義 '%s' の読み込みに失敗しました: %w", cfg.Options.SlidesFile, err)
	}
	slog.Info("スライド定義を読み込んだのだ", "slides", len(deck), "source", cfg.Options.SlidesFile)

	// トークンが無いときは acquirer を未配線（nil）のままにして
	// プレースホルダーモードへ入る。型付き nil を渡してはいけないのだ。
	var acquirer runner.ImageAcquirer
	if cfg.GeminiAPIKey == "" {
		slog.Warn("認証トークンが見つからないため、全スライドをプレースホルダーで組み立てるのだ")
	} else {
		acq, err := builder.BuildImageAcquirer(appCtx)
		if err != nil {
			return "", fmt.Errorf("画像取得コンポーネントの構築に失敗したのだ: %w", err)
		}
		acquirer = acq
	}

	deckRunner := runner.NewDeckRunner(
		acquirer,
		composer.NewSlideComposer(),
		cfg.Options.ImageDir,
		cfg.Options.OutputBase,
	)

	outputPath, err := deckRunner.Run(ctx, deck)
	if err != nil {
		return "", err
	}

	slog.Info("プレゼンテーションが完成したのだ！", "path", outputPath)
	return outputPath, nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// AIクライアントはトークンがあるときだけ初期化するのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	var aiClient gemini.GenerativeModel
	if cfg.GeminiAPIKey != "" {
		var err error
		aiClient, err = builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create ai client: %w", err)
		}
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}
