package kodi

import (
	"context"
	"fmt"
)

// LabelPlayingFile is the info label holding the now-playing path
const LabelPlayingFile = "Player.Filenameandpath"

// InfoLabels reads the given info labels in a single XBMC.GetInfoLabels call.
// Labels Kodi does not know come back as empty strings.
func (c *Client) InfoLabels(ctx context.Context, keys []string) (map[string]string, error) {
	labels := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return labels, nil
	}

	params := map[string]interface{}{"labels": keys}
	if err := c.Call(ctx, "XBMC.GetInfoLabels", params, &labels); err != nil {
		return nil, fmt.Errorf("failed to get info labels: %w", err)
	}

	return labels, nil
}

// PlayingFile returns the path of the item currently playing, or "" when idle
func (c *Client) PlayingFile(ctx context.Context) (string, error) {
	labels, err := c.InfoLabels(ctx, []string{LabelPlayingFile})
	if err != nil {
		return "", err
	}
	return labels[LabelPlayingFile], nil
}
