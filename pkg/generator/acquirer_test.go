package generator

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shouni/go-slide-kit/pkg/domain"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// stubBackend は画像バックエンドのテストダブルです。
type stubBackend struct {
	resp    *imagedom.ImageResponse
	err     error
	calls   int
	lastReq imagedom.ImageGenerationRequest
}

func (s *stubBackend) GenerateMangaPanel(_ context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	s.calls++
	s.lastReq = req
	return s.resp, s.err
}

// stubWriter は保存先と内容を記録する BlobWriter です。
type stubWriter struct {
	paths []string
	mimes []string
	data  [][]byte
	err   error
}

func (s *stubWriter) Write(_ context.Context, path string, reader io.Reader, mimeType string) error {
	if s.err != nil {
		return s.err
	}
	b, _ := io.ReadAll(reader)
	s.paths = append(s.paths, path)
	s.mimes = append(s.mimes, mimeType)
	s.data = append(s.data, b)
	return nil
}

func TestSlideImageAcquirer_Acquire(t *testing.T) {
	t.Run("画像データが返ればAcquiredとして保存されるのだ", func(t *testing.T) {
		backend := &stubBackend{resp: &imagedom.ImageResponse{Data: []byte{0x89, 0x50}, MimeType: "image/png"}}
		writer := &stubWriter{}
		a := NewSlideImageAcquirer(backend, writer, nil, "")

		outcome := a.Acquire(context.Background(), "sunrise", "generated_images/slide_1.png")

		if !outcome.Acquired() {
			t.Fatalf("Acquired にならないのだ: %+v", outcome)
		}
		if outcome.Path != "generated_images/slide_1.png" {
			t.Errorf("保存先パスが違うのだ: %q", outcome.Path)
		}
		if len(writer.paths) != 1 || writer.paths[0] != outcome.Path {
			t.Errorf("書き込みが1回・同一パスでないのだ: %v", writer.paths)
		}
		if writer.mimes[0] != "image/png" {
			t.Errorf("MIMEタイプが伝播しないのだ: %q", writer.mimes[0])
		}
		if backend.calls != 1 {
			t.Errorf("生成リクエストが1回ではないのだ: %d", backend.calls)
		}
	})

	t.Run("応答に画像が無ければNotProducedで保存もしないのだ", func(t *testing.T) {
		backend := &stubBackend{resp: &imagedom.ImageResponse{}}
		writer := &stubWriter{}
		a := NewSlideImageAcquirer(backend, writer, nil, "")

		outcome := a.Acquire(context.Background(), "sunrise", "generated_images/slide_1.png")

		if outcome.Status != domain.ImageNotProduced {
			t.Fatalf("NotProduced にならないのだ: %+v", outcome)
		}
		if len(writer.paths) != 0 {
			t.Errorf("画像なしなのにファイルが書かれたのだ: %v", writer.paths)
		}
	})

	t.Run("バックエンドのエラーはFailedに畳み込まれて伝播しないのだ", func(t *testing.T) {
		backend := &stubBackend{err: errors.New("quota exceeded")}
		a := NewSlideImageAcquirer(backend, &stubWriter{}, nil, "")

		outcome := a.Acquire(context.Background(), "sunrise", "generated_images/slide_1.png")

		if outcome.Status != domain.ImageFailed {
			t.Fatalf("Failed にならないのだ: %+v", outcome)
		}
		if outcome.Reason != "quota exceeded" {
			t.Errorf("診断メッセージが保持されないのだ: %q", outcome.Reason)
		}
		if backend.calls != 1 {
			t.Errorf("再試行してはいけないのだ: %d 回呼ばれた", backend.calls)
		}
	})

	t.Run("保存エラーもFailedとして吸収されるのだ", func(t *testing.T) {
		backend := &stubBackend{resp: &imagedom.ImageResponse{Data: []byte{1}}}
		writer := &stubWriter{err: errors.New("disk full")}
		a := NewSlideImageAcquirer(backend, writer, nil, "")

		outcome := a.Acquire(context.Background(), "sunrise", "generated_images/slide_1.png")
		if outcome.Status != domain.ImageFailed {
			t.Fatalf("保存失敗が Failed にならないのだ: %+v", outcome)
		}
	})

	t.Run("画風サフィックスはバックエンド向けプロンプトにだけ付くのだ", func(t *testing.T) {
		backend := &stubBackend{resp: &imagedom.ImageResponse{Data: []byte{1}}}
		a := NewSlideImageAcquirer(backend, &stubWriter{}, nil, "watercolor style")

		a.Acquire(context.Background(), "sunrise", "generated_images/slide_1.png")

		if backend.lastReq.Prompt != "sunrise, watercolor style" {
			t.Errorf("サフィックスが付加されないのだ: %q", backend.lastReq.Prompt)
		}
		if backend.lastReq.AspectRatio != "16:9" {
			t.Errorf("縦横比が16:9ではないのだ: %q", backend.lastReq.AspectRatio)
		}
	})

	t.Run("MIMEタイプ欠落時はimage/pngで保存するのだ", func(t *testing.T) {
		backend := &stubBackend{resp: &imagedom.ImageResponse{Data: []byte{1}}}
		writer := &stubWriter{}
		a := NewSlideImageAcquirer(backend, writer, nil, "")

		a.Acquire(context.Background(), "sunrise", "generated_images/slide_1.png")
		if writer.mimes[0] != "image/png" {
			t.Errorf("既定MIMEが適用されないのだ: %q", writer.mimes[0])
		}
	})
}
