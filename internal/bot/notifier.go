package bot

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
)

// DiscordNotifier delivers notifications as direct messages through an
// open discordgo session.
type DiscordNotifier struct {
	session *discordgo.Session
}

func NewDiscordNotifier(token string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}

	return &DiscordNotifier{session: session}, nil
}

func (n *DiscordNotifier) SendDirectMessage(_ context.Context, userID int64, message string) error {
	channel, err := n.session.UserChannelCreate(strconv.FormatInt(userID, 10))
	if err != nil {
		return errors.Wrapf(err, "failed to open DM channel for user %d", userID)
	}

	if _, err := n.session.ChannelMessageSend(channel.ID, message); err != nil {
		return errors.Wrapf(err, "failed to send DM to user %d", userID)
	}

	return nil
}

func snowflake(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}
