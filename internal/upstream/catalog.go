package upstream

import (
	"context"

	"github.com/magabrotheeeer/creator-hub/internal/models"
)

// FetchCreators возвращает всех авторов платформы.
func (c *Client) FetchCreators(ctx context.Context, token string) ([]models.Creator, error) {
	const op = "upstream.FetchCreators"
	var creators []models.Creator
	if err := c.get(ctx, op, "/creators", token, &creators); err != nil {
		return nil, err
	}
	return creators, nil
}

// FetchCreator возвращает автора по id.
func (c *Client) FetchCreator(ctx context.Context, token, creatorID string) (*models.Creator, error) {
	const op = "upstream.FetchCreator"
	var creator models.Creator
	if err := c.get(ctx, op, "/creators/"+escape(creatorID), token, &creator); err != nil {
		return nil, err
	}
	return &creator, nil
}

// FetchCreatorMedia возвращает все медиа автора, включая премиальные.
func (c *Client) FetchCreatorMedia(ctx context.Context, token, creatorID string) ([]models.Media, error) {
	const op = "upstream.FetchCreatorMedia"
	var media []models.Media
	if err := c.get(ctx, op, "/media/creator/"+escape(creatorID), token, &media); err != nil {
		return nil, err
	}
	return media, nil
}

// FetchCurrentUser возвращает профиль владельца токена.
func (c *Client) FetchCurrentUser(ctx context.Context, token string) (*models.User, error) {
	const op = "upstream.FetchCurrentUser"
	var user models.User
	if err := c.get(ctx, op, "/auth/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
