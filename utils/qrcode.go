package utils

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// SessionJoinURL tạo URL để sinh viên vào phiên học.
// Không ký, không hết hạn: ai có link/mã QR đều join được.
func SessionJoinURL(sessionID string) string {
	base := os.Getenv("PUBLIC_APP_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	return fmt.Sprintf("%s/students/%s", strings.TrimRight(base, "/"), sessionID)
}

// GenerateSessionQRCode sinh mã QR PNG cho phiên học, trả về dạng data URL
// để client hiển thị trực tiếp trong thẻ <img>.
func GenerateSessionQRCode(sessionID string) (string, error) {
	png, err := qrcode.Encode(SessionJoinURL(sessionID), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
