package service

import (
	"net/http"

	"github.com/BerniceZTT/leadgen_end/config"
	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/utils"

	"gopkg.in/gomail.v2"
)

// NewsletterSender 简报SMTP发送器
type NewsletterSender struct {
	cfg *config.Config
}

// NewNewsletterSender 创建简报发送器
func NewNewsletterSender(cfg *config.Config) *NewsletterSender {
	return &NewsletterSender{cfg: cfg}
}

// Send 发送简报到收件人列表。
// 只有已审核通过且状态为Ready的简报允许发送。
func (s *NewsletterSender) Send(newsletter models.Newsletter, recipients []string) error {
	if !newsletter.IsApproved {
		return utils.CreateBadRequestError("简报尚未审核通过，不能发送")
	}
	if newsletter.Status != models.NewsletterStatusReady {
		return utils.CreateBadRequestError("仅Ready状态的简报可以发送")
	}
	if len(recipients) == 0 {
		return utils.CreateBadRequestError("收件人列表为空")
	}
	if s.cfg.SMTPHost == "" {
		return utils.NewApiError("未配置SMTP服务", http.StatusServiceUnavailable, "SMTP_NOT_CONFIGURED")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPFrom)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", newsletter.Subject)
	m.SetBody("text/html", newsletter.Content)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		utils.LogError(err, map[string]interface{}{
			"newsletterId": newsletter.ID.Hex(),
			"recipients":   len(recipients),
		}, "简报发送失败")
		return utils.NewAppError("简报发送失败", http.StatusBadGateway, err)
	}

	utils.LogInfo(map[string]interface{}{
		"newsletterId": newsletter.ID.Hex(),
		"recipients":   len(recipients),
	}, "简报发送成功")

	return nil
}
