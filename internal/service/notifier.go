package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"commerce/storefront/internal/client"
	"commerce/storefront/internal/domain/task"
	"commerce/storefront/internal/queue"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// MaxNotificationRetries bounds how often a failed notification is queued again
const MaxNotificationRetries = 5

// Notifier drains the notification streams and hands each task to the commerce engine
type Notifier struct {
	queue       queue.Queue
	client      client.CommerceClient
	groupName   string
	minIdleTime time.Duration
}

func NewNotifier(
	queue queue.Queue,
	client client.CommerceClient,
	groupName string,
	minIdleTime int,
) *Notifier {
	if minIdleTime <= 0 {
		minIdleTime = 60
	}
	return &Notifier{
		queue:       queue,
		client:      client,
		groupName:   groupName,
		minIdleTime: time.Duration(minIdleTime) * time.Second,
	}
}

// RunWorkers blocks until ctx is cancelled
func (n *Notifier) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	for _, taskType := range task.Types {
		n.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamName(taskType), taskType)
	}

	wg.Wait()
	return nil
}

func (n *Notifier) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(n.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s", workerType)
				claimedMessages, err := n.queue.AutoClaim(ctx, n.groupName, consumer, streamName, n.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := n.processMessage(ctx, streamName, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := n.queue.GetTask(ctx, n.groupName, consumer, streamName)
					if err != nil {
						if ctx.Err() == nil {
							log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
						}
						continue
					}

					if msg != nil {
						if err := n.processMessage(ctx, streamName, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

// processMessage sends one notification. A failed send is queued again with a higher
// retry count. The delivered message is acked either way, including payloads that can
// never be handled, so the auto-claimer does not keep reclaiming them.
func (n *Notifier) processMessage(ctx context.Context, streamName string, msg *redis.XMessage) error {
	handleErr := n.handle(ctx, msg)

	if err := n.queue.AckTask(ctx, streamName, n.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}
	if handleErr != nil {
		return fmt.Errorf("dropped message %s: %w", msg.ID, handleErr)
	}
	return nil
}

// handle returns an error only for messages that no retry could deliver
func (n *Notifier) handle(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	switch taskType {
	case task.TypePasswordReset:
		t, err := task.UnmarshalTask[*task.PasswordResetTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal password reset task: %w", err)
		}
		if err := n.client.SendNotification(ctx, client.NotificationPasswordReset, t); err != nil {
			t.RetryCount++
			n.retry(ctx, t, t.RetryCount, err)
		}

	case task.TypeAccountRegistered:
		t, err := task.UnmarshalTask[*task.AccountRegisteredTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal account registered task: %w", err)
		}
		if err := n.client.SendNotification(ctx, client.NotificationAccountRegistered, t); err != nil {
			t.RetryCount++
			n.retry(ctx, t, t.RetryCount, err)
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}
	return nil
}

func (n *Notifier) retry(ctx context.Context, t task.Task, attempt int, cause error) {
	if attempt > MaxNotificationRetries {
		log.Errorf("❌ Giving up on %s after %d attempts: %v", t.TaskType(), attempt-1, cause)
		return
	}

	if _, err := n.queue.AddTask(ctx, t); err != nil {
		log.Errorf("❌ Failed to re-queue %s: %v", t.TaskType(), err)
		return
	}
	log.Warnf("🔄 %s failed, will retry (attempt %d): %v", t.TaskType(), attempt, cause)
}
