package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// SpeechService giữ một client Speech-to-Text duy nhất cho cả process.
type SpeechService struct {
	client *speech.Client
}

func NewSpeechService(ctx context.Context) (*SpeechService, error) {
	credPath := os.Getenv("GOOGLE_CREDENTIALS_JSON")
	if credPath == "" {
		return nil, errors.New("GOOGLE_CREDENTIALS_JSON environment variable is not set")
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, err
	}
	return &SpeechService{client: client}, nil
}

func (s *SpeechService) Close() error {
	return s.client.Close()
}

// encodingFromContentType ánh xạ Content-Type của file ghi âm sang encoding
// của Google Speech. Trình duyệt thường ghi webm/opus, ngoài ra hỗ trợ
// wav và mp3.
func encodingFromContentType(contentType string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch {
	case strings.Contains(contentType, "webm"), strings.Contains(contentType, "ogg"):
		return speechpb.RecognitionConfig_WEBM_OPUS, nil
	case strings.Contains(contentType, "wav"), strings.Contains(contentType, "x-wav"):
		return speechpb.RecognitionConfig_LINEAR16, nil
	case strings.Contains(contentType, "mpeg"), strings.Contains(contentType, "mp3"):
		return speechpb.RecognitionConfig_MP3, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("định dạng audio không hỗ trợ: %s", contentType)
	}
}

// recognitionConfig dựng config nhận dạng theo Content-Type của file.
// WAV/MP3 tự mô tả sample rate trong header nên để Google tự đọc,
// chỉ Opus cần khai báo (Opus luôn 48 kHz).
func recognitionConfig(contentType string) (*speechpb.RecognitionConfig, error) {
	encoding, err := encodingFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	cfg := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		LanguageCode:               "en-US",
		AlternativeLanguageCodes:   []string{"vi-VN"},
		EnableAutomaticPunctuation: true,
	}
	if encoding == speechpb.RecognitionConfig_WEBM_OPUS {
		cfg.SampleRateHertz = 48000
	}
	return cfg, nil
}

// Transcribe gửi audio lên Google Speech-to-Text và ghép các đoạn kết quả
// thành một transcription. Lời giảng có thể không phải tiếng Anh nên khai
// báo thêm ngôn ngữ thay thế để nhận dạng tự chọn.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("audio rỗng")
	}

	cfg, err := recognitionConfig(contentType)
	if err != nil {
		return "", err
	}

	req := &speechpb.RecognizeRequest{
		Config: cfg,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.client.Recognize(ctx, req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(result.Alternatives[0].Transcript)
	}

	if sb.Len() == 0 {
		return "", errors.New("không nhận dạng được nội dung audio")
	}
	return sb.String(), nil
}
