package worker

import (
	"context"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/mailer"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/service"
)

// StartNotificationWorker registers assignment-notification handlers on the
// event dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

// StartMailIngestWorker runs the mailbox listener until ctx is cancelled.
func StartMailIngestWorker(ctx context.Context, listener *mailer.Listener) {
	if listener == nil {
		return
	}
	go listener.Run(ctx)
}
