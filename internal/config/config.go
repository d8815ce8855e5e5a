package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultSlidesFile     = "slides.json"
	DefaultOutputBase     = "nano_banana_presentation"
	DefaultImageDir       = "generated_images"
	DefaultCredentialFile = ".env"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRateInterval   = 10 * time.Second
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiImageModel string
	StyleSuffix      string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// APIキー自体はここでは確定させず、クレデンシャルファイルを優先する
// LoadCredential 側で解決するのだよ。
func LoadConfig() *Config {
	return &Config{
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		StyleSuffix:      envutil.GetEnv("IMAGE_PROMPT_SUFFIX", ""),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	SlidesFile     string // --slides-file
	CredentialFile string // --credential-file

	// 生成結果の出力設定
	OutputBase string // --output-base
	ImageDir   string // --image-dir

	// AI挙動設定
	ImageModel string // --image-model

	// 実行制御
	HTTPTimeout  time.Duration // --http-timeout
	RateInterval time.Duration // --rate-interval
}
