package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	aipkg "github.com/adopour/backend/internal/ai"
	eventpkg "github.com/adopour/backend/internal/event"
	ormpkg "github.com/adopour/backend/internal/orm"
	templatepkg "github.com/adopour/backend/internal/template"
)

type Config struct {
	VerificationURL string
	SalesEmail      string
	// Sessions idle longer than SessionMaxIdle are pruned every
	// CleanupInterval. A zero interval disables pruning.
	SessionMaxIdle  time.Duration
	CleanupInterval time.Duration
}

type Mailer interface {
	SendHTML(to string, subject string, content string) error
}

type Store interface {
	SelectProfileByID(id string) (*ormpkg.Profile, error)
	SelectContactRequestByID(id string) (*ormpkg.ContactRequest, error)
	DeleteStaleSessions(maxIdle time.Duration) (int64, error)
}

type Moderator interface {
	ModeratePost(ctx context.Context, postID string) (*aipkg.PostAnalysis, error)
}

type Notifier interface {
	NotifyPostLiked(ctx context.Context, postID string, userID string) error
	NotifyCommentCreated(ctx context.Context, commentID string) error
	NotifyFriendRequested(ctx context.Context, friendshipID string) error
}

type Worker struct {
	context      context.Context
	cancel       func()
	waitGroup    sync.WaitGroup
	logger       *zap.Logger
	router       *Router
	brokerClient eventpkg.Consumer
	mailClient   Mailer
	database     Store
	moderator    Moderator
	notifier     Notifier
	config       *Config
}

func NewWorker(
	logger *zap.Logger,
	brokerClient eventpkg.Consumer,
	mailClient Mailer,
	database Store,
	moderator Moderator,
	notifier Notifier,
	config *Config,
) *Worker {
	context, cancel := context.WithCancel(context.Background())
	this := &Worker{
		context:      context,
		cancel:       cancel,
		logger:       logger,
		brokerClient: brokerClient,
		mailClient:   mailClient,
		database:     database,
		moderator:    moderator,
		notifier:     notifier,
		config:       config,
	}
	this.router = NewRouter(
		map[string][]EventHandler{
			eventpkg.AUTHORIZATION_REGISTER: {
				this.AuthorizationRegisterHandler,
			},
			eventpkg.AUTHORIZATION_LOGIN: {
				this.AuthorizationLoginHandler,
			},
			eventpkg.POST_CREATED: {
				this.PostCreatedHandler,
			},
			eventpkg.POST_LIKED: {
				this.PostLikedHandler,
			},
			eventpkg.COMMENT_CREATED: {
				this.CommentCreatedHandler,
			},
			eventpkg.FRIEND_REQUESTED: {
				this.FriendRequestedHandler,
			},
			eventpkg.BUSINESS_CONTACT: {
				this.BusinessContactHandler,
			},
		},
	)
	return this
}

func (this *Worker) Start() error {
	this.logger.Info("starting event worker")

	this.waitGroup.Add(1)
	go this.worker()

	if this.config.CleanupInterval > 0 {
		this.waitGroup.Add(1)
		go this.janitor()
	}
	return nil
}

func (this *Worker) Stop() error {
	this.logger.Info("stopping event worker")

	this.cancel()
	this.waitGroup.Wait()
	return nil
}

func (this *Worker) worker() {
	defer this.waitGroup.Done()

	for {
		select {
		case <-this.context.Done():
			return
		case <-time.After(1 * time.Millisecond):
		}

		event, data, err := this.brokerClient.ReadMessage(this.context)
		if err != nil {
			if this.context.Err() != nil {
				return
			}
			this.logger.Error("error receiving kafka message", zap.Error(err))
			continue
		}

		if !this.router.Handles(event) {
			this.logger.Debug("skipping unrouted event", zap.String("event", event))
			continue
		}

		err = this.router.Handle(this.context, event, []byte(data))
		if err != nil {
			this.logger.Error("error handling kafka message", zap.String("event", event), zap.Error(err))
			continue
		}
	}
}

func (this *Worker) janitor() {
	defer this.waitGroup.Done()

	ticker := time.NewTicker(this.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-this.context.Done():
			return
		case <-ticker.C:
		}

		deleted, err := this.database.DeleteStaleSessions(this.config.SessionMaxIdle)
		if err != nil {
			this.logger.Error("error pruning sessions", zap.Error(err))
			continue
		}
		if deleted > 0 {
			this.logger.Info("pruned stale sessions", zap.Int64("count", deleted))
		}
	}
}

func (this *Worker) AuthorizationRegisterHandler(ctx context.Context, data []byte) error {
	var message eventpkg.AuthorizationRegisterMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(message.ID)
	if err != nil {
		return err
	}

	user, err := this.database.SelectProfileByID(userID.String())
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return nil
	}

	verificationURL := fmt.Sprintf("%s?token=%s", this.config.VerificationURL, url.QueryEscape(user.VerificationToken))

	templateData := struct {
		User string
		URL  string
	}{
		User: user.DisplayName,
		URL:  verificationURL,
	}

	content, err := templatepkg.Render(templatepkg.MailConfirm, templateData)
	if err != nil {
		return err
	}

	err = this.mailClient.SendHTML(user.Email, "Confirm your Adopour account", content)
	if err != nil {
		return err
	}

	this.logger.Info("sent email verification email", zap.String("email", user.Email))
	return nil
}

func (this *Worker) AuthorizationLoginHandler(ctx context.Context, data []byte) error {
	var message eventpkg.AuthorizationLoginMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	this.logger.Info("user logged in", zap.String("id", message.ID))
	return nil
}

// PostCreatedHandler runs the moderation analysis for a new post. Posts
// deleted before the event is consumed are skipped.
func (this *Worker) PostCreatedHandler(ctx context.Context, data []byte) error {
	var message eventpkg.PostCreatedMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	analysis, err := this.moderator.ModeratePost(ctx, message.ID)
	if status.Code(err) == codes.NotFound {
		this.logger.Debug("post gone before moderation", zap.String("id", message.ID))
		return nil
	}
	if err != nil {
		return err
	}

	if !analysis.IsSafe {
		this.logger.Warn("post flagged by moderation",
			zap.String("id", message.ID),
			zap.Strings("flags", analysis.ModerationFlags),
		)
	}
	return nil
}

func (this *Worker) PostLikedHandler(ctx context.Context, data []byte) error {
	var message eventpkg.PostLikedMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}
	return this.notifier.NotifyPostLiked(ctx, message.PostID, message.UserID)
}

func (this *Worker) CommentCreatedHandler(ctx context.Context, data []byte) error {
	var message eventpkg.CommentCreatedMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}
	return this.notifier.NotifyCommentCreated(ctx, message.ID)
}

func (this *Worker) FriendRequestedHandler(ctx context.Context, data []byte) error {
	var message eventpkg.FriendRequestedMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}
	return this.notifier.NotifyFriendRequested(ctx, message.ID)
}

func (this *Worker) BusinessContactHandler(ctx context.Context, data []byte) error {
	var message eventpkg.BusinessContactMessage
	err := json.Unmarshal(data, &message)
	if err != nil {
		return err
	}

	if this.config.SalesEmail == "" {
		return errors.New("sales email is not configured")
	}

	request, err := this.database.SelectContactRequestByID(message.ID)
	if err != nil {
		return err
	}

	content, err := templatepkg.Render(templatepkg.MailContact, request)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Business inquiry from %s", request.Company)
	err = this.mailClient.SendHTML(this.config.SalesEmail, subject, content)
	if err != nil {
		return err
	}

	this.logger.Info("forwarded business inquiry", zap.String("id", message.ID))
	return nil
}
