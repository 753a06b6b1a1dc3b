package service

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/RoyceAzure/rj/infra/mail"
)

type IMailService interface {
	SendPasswordResetEmail(ctx context.Context, data PasswordResetMailData) error
}

type MailService struct {
	mail.EmailSender
}

// PasswordResetMailData 密碼重設信的數據結構
type PasswordResetMailData struct {
	Email         string // 使用者信箱
	ResetURL      string // 重設連結
	ExpiryMinutes int    // 連結有效時間(分鐘)
}

// NewMailService 初始化 mail service
// 參數:
//
//	sender_name: 寄件者屬名
//	fromEmailAddress: 寄件者郵件地址
//	fromEmailPassword: 寄件者郵件密碼
func NewMailService(sender_name, fromEmailAddress, fromEmailPassword string) IMailService {
	return &MailService{
		mail.NewGmailSender(sender_name, fromEmailAddress, fromEmailPassword),
	}
}

func (m *MailService) SendPasswordResetEmail(ctx context.Context, data PasswordResetMailData) error {
	html, err := GeneratePasswordResetHTML(data)
	if err != nil {
		return err
	}

	return m.SendEmail("密碼重設", html, []string{data.Email}, nil, nil, nil)
}

// GeneratePasswordResetHTML 生成 HTML 格式的密碼重設信
func GeneratePasswordResetHTML(data PasswordResetMailData) (string, error) {
	tmpl, err := template.New("emailHTML").Parse(passwordResetTemplate)
	if err != nil {
		return "", fmt.Errorf("解析 HTML 模板失敗: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("執行 HTML 模板失敗: %w", err)
	}

	return buf.String(), nil
}

// HTML 模板
const passwordResetTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>密碼重設</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #007bff; color: white; padding: 20px; text-align: center; }
        .content { padding: 30px; background-color: #f9f9f9; }
        .button { display: inline-block; padding: 12px 30px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #666; }
        .warning { color: #e74c3c; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>密碼重設請求</h1>
        </div>

        <div class="content">
            <p>我們收到了您的密碼重設請求，請點擊下方按鈕重設密碼：</p>

            <div style="text-align: center;">
                <a href="{{.ResetURL}}" class="button">重設密碼</a>
            </div>

            <p>或複製以下連結到瀏覽器中開啟：</p>
            <p style="word-break: break-all; background-color: #e9e9e9; padding: 10px; border-radius: 3px;">
                {{.ResetURL}}
            </p>

            <p class="warning">
                ⚠️ 此重設連結將在 {{.ExpiryMinutes}} 分鐘後失效，且只能使用一次。
            </p>

            <p>如果您沒有提出此請求，請忽略此郵件，您的密碼不會被變更。</p>
        </div>

        <div class="footer">
            <p>此郵件由系統自動發送，請勿直接回覆。</p>
        </div>
    </div>
</body>
</html>
`
