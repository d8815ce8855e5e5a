// Package cmd はコマンドライン体系の定義と解析を担うのだ。
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-slide-kit/internal/config"
	"github.com/shouni/go-slide-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// opts は CLI フラグの値を受け取る実行時オプションなのだ。
var opts config.GenerateOptions

// rootCmd は引数なしの実行でスライド定義から .pptx までを一気通貫で作るのだ。
var rootCmd = &cobra.Command{
	Use:   "go-slide-kit",
	Short: "JSONのスライド定義からGemini画像付きの.pptxを組み立てるのだ。",
	Long: `スライド定義（JSON）を読み込み、各スライドに Gemini 生成画像または
決定的なプレースホルダーを添えた PowerPoint プレゼンテーションを組み立てるのだ。
認証トークンが無くてもエラーにはならず、全スライドがプレースホルダーになるのだよ。`,
	SilenceUsage: true,
	RunE:         generateCommand,
}

// init はフラグ定義とコマンド体系の登録を行う初期化関数なのだ。
func init() {
	// --- ソース入力関連 ---
	rootCmd.Flags().StringVarP(&opts.SlidesFile, "slides-file", "f", config.DefaultSlidesFile, "スライド定義JSONのパス（ローカル or gs://...）なのだ。")
	rootCmd.Flags().StringVarP(&opts.CredentialFile, "credential-file", "c", config.DefaultCredentialFile, "Gemini認証トークンを1行で書いたファイルなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.Flags().StringVarP(&opts.OutputBase, "output-base", "o", config.DefaultOutputBase, "成果物ファイル名の基底（タイムスタンプと .pptx が付くのだ）。")
	rootCmd.Flags().StringVarP(&opts.ImageDir, "image-dir", "i", config.DefaultImageDir, "生成画像を保存するディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.Flags().StringVar(&opts.ImageModel, "image-model", "", "使用する Gemini 画像モデル名なのだ（未指定なら環境変数か既定値）。")
	rootCmd.Flags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.Flags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateInterval, "画像生成呼び出しの最小間隔なのだ。")
}

// generateCommand は組み立てロジックの本体なのだ。
// 環境変数の設定にフラグの値を重ね、パイプラインをキックするのだ。
func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.SlidesFile == "" {
		return fmt.Errorf("読み込むスライド定義（--slides-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("スライド組み立てを起動するのだ！",
		"slides_file", cfg.Options.SlidesFile,
		"output_base", cfg.Options.OutputBase,
		"image_dir", cfg.Options.ImageDir)

	outputPath, err := pipeline.Execute(ctx, cfg)
	if err != nil {
		return err
	}

	// 成果物のパスは後続ツールが拾えるよう標準出力へ出すのだ
	fmt.Println(outputPath)
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("実行に失敗したのだ", "error", err)
		os.Exit(1)
	}
}
