// Package notify delivers the Slack and email side effects of order
// events. Delivery is best-effort: failures are logged and never bubble
// up into the user-facing request, and the durable order mutation has
// always happened before anything here runs.
package notify

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
	gomail "gopkg.in/gomail.v2"
)

const supportEmail = "support@mymoji.co"

type Config struct {
	SlackToken     string
	SlackChannelID string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	FromAddress    string
	Domain         string
}

type Notifier struct {
	slack     *slack.Client
	channelID string
	dialer    *gomail.Dialer
	from      string
	domain    string
}

func NewNotifier(cfg Config) *Notifier {
	n := &Notifier{
		channelID: cfg.SlackChannelID,
		from:      cfg.FromAddress,
		domain:    cfg.Domain,
	}
	if cfg.SlackToken != "" && cfg.SlackChannelID != "" {
		n.slack = slack.New(cfg.SlackToken)
	}
	if cfg.SMTPHost != "" {
		n.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return n
}

func (n *Notifier) postSlack(text string) {
	if n.slack == nil {
		return
	}
	if _, _, err := n.slack.PostMessage(n.channelID, slack.MsgOptionText(text, false)); err != nil {
		log.Printf("Warning: failed to post Slack message: %v", err)
	}
}

func (n *Notifier) sendEmail(to, subject, body string) {
	if n.dialer == nil {
		return
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := n.dialer.DialAndSend(m); err != nil {
		log.Printf("Warning: failed to send email to %s: %v", to, err)
	}
}

func (n *Notifier) pageLinks(customerID string) string {
	artistPageLink := fmt.Sprintf("<%s/artistView/%s|Artist page>", n.domain, customerID)
	customerPageLink := fmt.Sprintf("<%s/viewOrder/%s|Customer page>", n.domain, customerID)
	return fmt.Sprintf("\n\n\t%s\n\n\t%s", artistPageLink, customerPageLink)
}

// OrderPaid announces a paid order to the artists' channel and sends the
// customer their confirmation email.
func (n *Notifier) OrderPaid(customerID, name, email string) {
	n.postSlack(fmt.Sprintf("We have a new order from %s\n\n\t%s%s", name, email, n.pageLinks(customerID)))

	body := fmt.Sprintf("Dear %s,\n\nThank you for your order! Our artists will get to work right away. "+
		"We'll email you when your MyMoji is ready (expect to hear back from us within 24-48 hours).\n\nOrder Id: %s\n"+
		"If you have any questions, please email us at %s\n\nThank you,\n\nThe MyMoji Team",
		name, customerID, supportEmail)
	n.sendEmail(email, "Thank you for your order!", body)
}

// RenditionReady tells the customer a new rendition is waiting for them.
func (n *Notifier) RenditionReady(customerID, name, email string) {
	link := fmt.Sprintf("%s/viewOrder/%s", n.domain, customerID)
	body := fmt.Sprintf("Hi %s,\n\nOur artists have finished your MyMoji. We can't wait to hear what you think.\n\nYou can check out your MyMoji at %s.", name, link)
	n.sendEmail(email, "Your MyMoji is ready", body)
}

// FeedbackReceived relays customer feedback to the artists' channel.
func (n *Notifier) FeedbackReceived(customerID, name, email, feedback string) {
	n.postSlack(fmt.Sprintf("%s gave feedback: %s\n\n\t%s%s", name, feedback, email, n.pageLinks(customerID)))
}

// MugshotReplaced tells the artists the customer restarted with a new
// reference photo.
func (n *Notifier) MugshotReplaced(customerID, name, email string) {
	n.postSlack(fmt.Sprintf("%s uploaded a new Mugshot:\n\n\t%s%s", name, email, n.pageLinks(customerID)))
}

// ContactMessage forwards a contact-form message to the support inbox.
func (n *Notifier) ContactMessage(text string) {
	n.sendEmail(supportEmail, "A user has contacted MyMoji", text)
}
