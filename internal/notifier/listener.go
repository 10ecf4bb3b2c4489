package notifier

import (
	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
)

type Listener struct {
	Client *Client
}

func (u Listener) Listen(_ models.EventName, event interface{}) {
	switch event := event.(type) {
	case models.PostCreatedEvent:
		u.Client.PostCreated(event)
	case models.PostDeletedEvent:
		u.Client.PostDeleted(event)
	case models.OrderUpdatedEvent:
		u.Client.OrderUpdated(event)
	default:
		log.Printf("registered an invalid notifier event: %T\n", event)
	}
}
