package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Delivery itself is an external
// collaborator, so services only see this interface.
type Sender interface {
	SendOTP(to, code string) error
}

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s *SMTPSender) SendOTP(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	return d.DialAndSend(m)
}
