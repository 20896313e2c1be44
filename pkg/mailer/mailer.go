package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ider-17/Bondly/config"
)

// Mailer SMTP 邮件发送器
// 审批结果通知等场景的 best-effort 推送，失败由调用方记录日志
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer 创建 SMTP 邮件发送器
func NewMailer(cfg *config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send 发送一封 HTML 通知邮件
func (m *Mailer) Send(to, name, subject, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", renderBody(name, message))

	return m.dialer.DialAndSend(msg)
}

// renderBody 渲染通知邮件正文
func renderBody(name, message string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #22C55E;">Hello %s!</h2>
  <p>%s</p>
  <div style="margin-top: 20px; padding: 15px; background-color: #f8f9fa; border-radius: 8px;">
    <p style="margin: 0; color: #666; font-size: 14px;">
      This is an automated message from Bondly.
    </p>
  </div>
</div>`, name, message)
}
