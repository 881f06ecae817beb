package utils

import (
	"encoding/base64"
	"fmt"
)

// BytesToDataURL 将二进制内容编码为内联 data URL：data:<mime>;base64,<payload>。
func BytesToDataURL(b []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(b))
}
