package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/BarberProDZ/salon-scheduler/internal/config"
	"github.com/BarberProDZ/salon-scheduler/internal/i18n"
	"github.com/BarberProDZ/salon-scheduler/internal/logger"
)

// Confirmation est le contenu du SMS envoyé après une réservation réussie
type Confirmation struct {
	Phone        string
	CustomerName string
	ShopName     string
	Date         string
	Start        string
	ServiceNames string
	TotalPrice   float64
	Lang         string
}

// SMSSender envoie les confirmations via Twilio. Sans identifiants
// configurés, l'envoi est désactivé et la réservation n'en dépend jamais.
type SMSSender struct {
	client  *twilio.RestClient
	from    string
	enabled bool
}

func NewSMSSender(cfg *config.Config) *SMSSender {
	if !cfg.TwilioEnabled() {
		return &SMSSender{enabled: false}
	}

	return &SMSSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from:    cfg.TwilioFromNumber,
		enabled: true,
	}
}

func (s *SMSSender) Send(c Confirmation) error {
	if !s.enabled {
		return nil
	}

	body := buildBody(c)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(c.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

func buildBody(c Confirmation) string {
	if i18n.Normalize(c.Lang) == i18n.LangAR {
		return fmt.Sprintf(
			"%s: تم تأكيد حجزك ليوم %s على الساعة %s (%s). المجموع: %.0f دج",
			c.ShopName, c.Date, c.Start, c.ServiceNames, c.TotalPrice,
		)
	}
	return fmt.Sprintf(
		"%s: votre réservation du %s à %s est confirmée (%s). Total : %.0f DZD",
		c.ShopName, c.Date, c.Start, c.ServiceNames, c.TotalPrice,
	)
}

// ===============================
// Dispatcher
// ===============================

// Dispatcher découple l'envoi du SMS de la transaction de réservation :
// la confirmation part en file, jamais sur le chemin critique.
type Dispatcher struct {
	sender *SMSSender
	queue  chan Confirmation
}

func NewDispatcher(sender *SMSSender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Confirmation, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for c := range d.queue {
		if err := d.sender.Send(c); err != nil {
			logger.L().Warn("confirmation sms failed",
				zap.String("phone", c.Phone),
				zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(c Confirmation) {
	select {
	case d.queue <- c:
	default:
		logger.L().Warn("sms queue full, dropping confirmation",
			zap.String("phone", c.Phone))
	}
}
