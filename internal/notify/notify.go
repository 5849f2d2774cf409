package notify

import (
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"github.com/stackithq/stackit/backend/internal/models"
)

// Notifier appends notifications to a user's feed. When Twilio
// credentials are configured, accepted-answer notifications also fan
// out as SMS to recipients who registered a phone number.
type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func New(db *gorm.DB) *Notifier {
	n := &Notifier{db: db}

	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")
	if sid != "" && token != "" && from != "" {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: token,
		})
		n.from = from
		log.Println("✅ Twilio SMS notifications enabled")
	}

	return n
}

// Push appends a notification inside the caller's transaction. The row
// is append-only from here on; marking read is the owner's concern.
func (n *Notifier) Push(tx *gorm.DB, notification *models.Notification) error {
	if err := tx.Create(notification).Error; err != nil {
		return err
	}

	if n.client != nil && notification.Type == models.NotificationAccepted {
		// Best effort — an SMS failure must not fail the operation
		// that produced the notification.
		go n.sendSMS(notification.UserID, notification.Content)
	}

	return nil
}

func (n *Notifier) sendSMS(userID int, body string) {
	var user models.User
	if err := n.db.First(&user, userID).Error; err != nil || user.Phone == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send SMS notification to user %d: %v", userID, err)
	}
}
