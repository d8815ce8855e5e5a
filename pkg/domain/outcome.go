package domain

// ImageStatus は画像取得の結末を分類します。
type ImageStatus int

const (
	// ImageNotProduced は生成を試みなかった、または応答に画像が含まれなかった状態です。
	ImageNotProduced ImageStatus = iota
	// ImageAcquired は画像バイト列を取得しコンテンツストアへ保存済みの状態です。
	ImageAcquired
	// ImageFailed はバックエンド呼び出し自体が失敗した状態です。
	ImageFailed
)

// ImageOutcome は1スライド分の画像取得結果を表すタグ付きバリアントです。
// 取得境界を越える例外は存在せず、すべての結末がこの値に畳み込まれます。
// Composer が直ちに消費し、描画パスを越えて保持されることはありません。
type ImageOutcome struct {
	Status ImageStatus
	Path   string // 保存先（Status == ImageAcquired のときのみ有効）
	Data   []byte // 取得した画像バイト列（同上）
	Reason string // 失敗理由の短い診断（Status == ImageFailed のときのみ有効）
}

// AcquiredOutcome は保存済み画像の取得成功を表します。
func AcquiredOutcome(path string, data []byte) ImageOutcome {
	return ImageOutcome{Status: ImageAcquired, Path: path, Data: data}
}

// NotProducedOutcome は「画像なし」の結末を表します。
func NotProducedOutcome() ImageOutcome {
	return ImageOutcome{Status: ImageNotProduced}
}

// FailedOutcome はバックエンド失敗の結末を表します。
func FailedOutcome(reason string) ImageOutcome {
	return ImageOutcome{Status: ImageFailed, Reason: reason}
}

// Acquired は画像を取得できたかどうかを返します。
func (o ImageOutcome) Acquired() bool {
	return o.Status == ImageAcquired
}
