package asset

import (
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "generated_images"
	// DefaultSlideImageName はスライド画像の共通のベースファイル名です。
	// 連番を挿入して slide_1.png のように使います。
	DefaultSlideImageName = "slide.png"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入し、
// 新しいパス文字列を生成します。index は1以上の整数である必要があります。
// 例: "generated_images/slide.png", 3 -> "generated_images/slide_3.png"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}

// IsRemote は gs:// などのリモートストレージを指すパスかどうかを返します。
func IsRemote(path string) bool {
	return strings.Contains(path, "://")
}
