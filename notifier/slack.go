package notifier

import (
	"context"
	"fmt"
	"os"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/slack-go/slack"
)

// SlackNotifier posts digests to an incoming webhook. It is an alternative
// delivery channel to email, useful for shared channels where the user id
// is not a mailbox.
type SlackNotifier struct {
	webhookURL string
	vod        model.VOD
	metadata   *cache.MetadataCache
}

// NewSlackNotifier reads the incoming webhook from SLACK_WEBHOOK_URL.
func NewSlackNotifier(metadata *cache.MetadataCache, vod model.VOD) (*SlackNotifier, error) {
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")
	if webhookURL == "" {
		return nil, &model.ConfigurationError{Reason: "SLACK_WEBHOOK_URL must be set"}
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		vod:        vod,
		metadata:   metadata,
	}, nil
}

func (n *SlackNotifier) Notify(ctx context.Context, userID string, report model.Report) error {
	entries := buildDigest(ctx, n.metadata, n.vod, report)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s* updates for %s", emailSubject, userID), false, false),
			nil, nil),
	}
	for _, entry := range entries {
		bodyElements := []slack.MixedElement{
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("<%s|*%s*>", entry.DramaURL, entry.DramaName), false, false),
		}
		for _, showURL := range entry.ShowURLs {
			bodyElements = append(bodyElements, slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("• <%s|%s>", showURL, showURL), false, false))
		}
		blocks = append(blocks, slack.NewContextBlock("", bodyElements...))
	}

	webhookMsg := &slack.WebhookMessage{
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, webhookMsg); err != nil {
		return &model.NotifyError{UserID: userID, Err: err}
	}
	return nil
}
