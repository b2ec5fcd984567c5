package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiService giữ một client Gemini duy nhất cho cả process,
// được khởi tạo ở main và truyền vào các controller cần dùng.
type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, apiKey string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("không thể tạo Gemini client: %v", err)
	}
	return &GeminiService{client: client, model: "gemini-2.0-flash"}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

// GenerateText gửi prompt và trả về text từ Gemini
func (s *GeminiService) GenerateText(ctx context.Context, parts ...genai.Part) (string, error) {
	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("lỗi Gemini xử lý: %v", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini không trả kết quả hợp lệ")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(fmt.Sprintf("%v", part))
	}
	return sb.String(), nil
}

// AnswerTextQuestion trả lời câu hỏi text của sinh viên. Trợ giảng chỉ
// gợi ý hướng giải, không đưa đáp án ngay.
func (s *GeminiService) AnswerTextQuestion(ctx context.Context, question string) (string, error) {
	prompt := "Bạn là trợ giảng. Hãy hướng dẫn sinh viên từng bước để tự tìm ra lời giải, " +
		"không đưa đáp án cuối cùng ngay lập tức.\n\nCâu hỏi: " + question
	return s.GenerateText(ctx, genai.Text(prompt))
}

// AnswerImageQuestion phân tích ảnh câu hỏi (bài tập chụp từ vở, slide...).
// extraPrompt là yêu cầu bổ sung tuỳ chọn của sinh viên.
func (s *GeminiService) AnswerImageQuestion(ctx context.Context, imageData []byte, imageFormat string, extraPrompt string) (string, error) {
	parts := []genai.Part{
		genai.Text("Hãy phân tích chi tiết nội dung của ảnh sau và giải thích rõ ràng cho sinh viên."),
		genai.ImageData(imageFormat, imageData),
	}
	if extraPrompt != "" {
		parts = append(parts, genai.Text("Ngoài ra, hãy trả lời thêm yêu cầu sau: "+extraPrompt))
	}
	return s.GenerateText(ctx, parts...)
}

// SummarizePage tóm tắt một trang slide từ nội dung trích xuất và lời giảng
// đã phiên âm. Thiếu phần nào thì dùng phần còn lại.
func (s *GeminiService) SummarizePage(ctx context.Context, content string, transcription string) (string, error) {
	prompt := fmt.Sprintf(
		"Hãy tóm tắt chi tiết nội dung trang slide sau.\nNội dung slide: %s\nLời giảng: %s\n"+
			"Nếu thiếu nội dung slide hoặc lời giảng thì chỉ dùng phần có sẵn. "+
			"Trả về văn bản thuần tuý, không dùng markdown.",
		content, transcription,
	)
	return s.GenerateText(ctx, genai.Text(prompt))
}

// GenerateInsights tổng hợp các câu hỏi của sinh viên trong một phiên học
// thành nhận định cho giảng viên: chủ đề lặp lại, phần sinh viên chưa hiểu,
// nội dung nên nhấn mạnh ở buổi sau.
func (s *GeminiService) GenerateInsights(ctx context.Context, questions []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Bạn đang hỗ trợ giảng viên phân tích câu hỏi của sinh viên. ")
	sb.WriteString("Hãy chỉ ra các chủ đề lặp lại, những phần sinh viên còn bối rối và gợi ý nội dung nên tập trung ở buổi tới.\n\n")
	sb.WriteString("Danh sách câu hỏi:\n")
	for i, q := range questions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}
	return s.GenerateText(ctx, genai.Text(sb.String()))
}

// TranslateToEnglish dịch transcription sang tiếng Anh nếu lời giảng
// không phải tiếng Anh.
func (s *GeminiService) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	prompt := "Dịch văn bản sau sang tiếng Anh. Nếu văn bản đã là tiếng Anh thì giữ nguyên. " +
		"Chỉ trả về bản dịch, không giải thích.\n\n" + text
	return s.GenerateText(ctx, genai.Text(prompt))
}
