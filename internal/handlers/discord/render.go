package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jingles/moosic/internal/gateway"
)

const embedColor = 0x1db954 // Spotify green

// renderEmbed converts a platform-neutral embed into a Discord embed
func renderEmbed(embed *gateway.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embedColor,
	}

	for _, field := range embed.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	if embed.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}
	if !embed.Timestamp.IsZero() {
		out.Timestamp = embed.Timestamp.UTC().Format(time.RFC3339)
	}

	return out
}

// renderSend converts content into a sendable Discord message
func renderSend(content *gateway.Content) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{Content: content.Text}
	if content.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{renderEmbed(content.Embed)}
	}
	return msg
}

// renderEdit converts content into a Discord message edit
func renderEdit(channelID, messageID string, content *gateway.Content) *discordgo.MessageEdit {
	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.SetContent(content.Text)
	if content.Embed != nil {
		edit.SetEmbeds([]*discordgo.MessageEmbed{renderEmbed(content.Embed)})
	}
	return edit
}
