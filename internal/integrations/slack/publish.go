package slackbot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"
)

// Publisher uploads run artifacts to a report channel.
type Publisher struct {
	api       *slack.Client
	channelID string
}

func NewPublisher(botToken, channelID string, opts ...slack.Option) *Publisher {
	return &Publisher{
		api:       slack.New(botToken, opts...),
		channelID: channelID,
	}
}

func (p *Publisher) UploadFile(ctx context.Context, path, title, comment string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Size() <= 0 {
		return fmt.Errorf("generated file is empty path=%s", path)
	}

	_, err = p.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		File:           path,
		FileSize:       int(fi.Size()),
		Filename:       filepath.Base(path),
		Channel:        p.channelID,
		Title:          title,
		InitialComment: comment,
	})
	if err != nil {
		return fmt.Errorf("upload %s to %s: %w", filepath.Base(path), p.channelID, err)
	}
	log.Printf("slack upload file=%s channel=%s", filepath.Base(path), p.channelID)
	return nil
}
