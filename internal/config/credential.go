package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-utils/envutil"
)

// LoadCredential は Gemini の認証トークンを解決するのだ。
// クレデンシャルファイル（既定: .env）の中身をトリムしたものを最優先とし、
// 読めない・空の場合は環境変数 GEMINI_API_KEY に退避するのだ。
// どちらも無ければ空文字列を返し、呼び出し側がプレースホルダーモードに入る。
func LoadCredential(path string) string {
	if data, err := os.ReadFile(path); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
		slog.Warn("クレデンシャルファイルが空なのだ", "path", path)
	}
	return envutil.GetEnv("GEMINI_API_KEY", "")
}
