package steam

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	perr "playerpulse/internal/platform/errors"
	pstrings "playerpulse/internal/platform/strings"
)

// CurrentPlayers returns the live player count for an app
// absent or invalid upstream payloads yield 0 with a logged warning so
// fan-out callers never need to special-case them
func (c *Client) CurrentPlayers(ctx context.Context, appID int64) (int64, error) {
	q := c.apiQuery()
	q.Set("appid", strconv.FormatInt(appID, 10))
	var env playerCountEnvelope
	err := c.getJSON(ctx, c.opts.APIBaseURL, "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/", q, &env)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			c.log.Warn().Int64("appid", appID).Msg("player count missing upstream")
			return 0, nil
		}
		return 0, err
	}
	if env.Response.Result != 1 || env.Response.PlayerCount < 0 {
		c.log.Warn().Int64("appid", appID).Int("result", env.Response.Result).Msg("player count payload invalid")
		return 0, nil
	}
	return env.Response.PlayerCount, nil
}

// AppDetail fetches the storefront document for an app
// returns (nil, nil) when the storefront has no data for the id
func (c *Client) AppDetail(ctx context.Context, appID int64) (*GameDetail, error) {
	id := strconv.FormatInt(appID, 10)
	q := url.Values{}
	q.Set("appids", id)
	q.Set("cc", c.opts.CountryCode)
	q.Set("l", c.opts.Language)

	var env map[string]appDetailsEntry
	err := c.getJSON(ctx, c.opts.StoreBaseURL, "/api/appdetails", q, &env)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	entry, ok := env[id]
	if !ok || !entry.Success {
		return nil, nil
	}

	d := entry.Data
	out := &GameDetail{
		AppID:           appID,
		Name:            d.Name,
		Description:     pstrings.StripHTML(d.ShortDescription),
		HeaderImage:     d.HeaderImage,
		BackgroundImage: d.Background,
		ReleaseDate:     d.ReleaseDate.Date,
		IsFree:          d.IsFree,
	}
	if d.PriceOverview != nil {
		out.Price = float64(d.PriceOverview.Final) / 100.0
	}
	for _, g := range d.Genres {
		if g.Description != "" {
			out.Genres = append(out.Genres, g.Description)
		}
	}
	for _, cat := range d.Categories {
		if cat.Description != "" {
			out.Categories = append(out.Categories, cat.Description)
		}
	}
	return out, nil
}

// MostPlayed returns the current most-played chart, upstream rank ordered
// callers must not assume deterministic ordering within rank ties
func (c *Client) MostPlayed(ctx context.Context) ([]MostPlayedEntry, error) {
	var env mostPlayedEnvelope
	if err := c.getJSON(ctx, c.opts.APIBaseURL, "/ISteamChartsService/GetMostPlayedGames/v1/", c.apiQuery(), &env); err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return env.Response.Ranks, nil
}

// ComingSoon returns the storefront coming-soon shelf
func (c *Client) ComingSoon(ctx context.Context) ([]ComingSoonEntry, error) {
	q := url.Values{}
	q.Set("cc", c.opts.CountryCode)
	q.Set("l", c.opts.Language)
	var env featuredCategoriesEnvelope
	if err := c.getJSON(ctx, c.opts.StoreBaseURL, "/api/featuredcategories", q, &env); err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return env.ComingSoon.Items, nil
}

// PlayerSummary returns one community profile, or nil when unknown
func (c *Client) PlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	q := c.apiQuery()
	q.Set("steamids", steamID)
	var env playerSummariesEnvelope
	err := c.getJSON(ctx, c.opts.APIBaseURL, "/ISteamUser/GetPlayerSummaries/v2/", q, &env)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(env.Response.Players) == 0 {
		return nil, nil
	}
	return &env.Response.Players[0], nil
}

// OwnedGames lists the library of a profile; empty for private profiles
func (c *Client) OwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	q := c.apiQuery()
	q.Set("steamid", steamID)
	q.Set("include_appinfo", "1")
	q.Set("include_played_free_games", "1")
	var env ownedGamesEnvelope
	err := c.getJSON(ctx, c.opts.APIBaseURL, "/IPlayerService/GetOwnedGames/v1/", q, &env)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return env.Response.Games, nil
}

// RecentlyPlayed lists games played in the last two weeks
func (c *Client) RecentlyPlayed(ctx context.Context, steamID string) ([]OwnedGame, error) {
	q := c.apiQuery()
	q.Set("steamid", steamID)
	var env recentlyPlayedEnvelope
	err := c.getJSON(ctx, c.opts.APIBaseURL, "/IPlayerService/GetRecentlyPlayedGames/v1/", q, &env)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return env.Response.Games, nil
}

// ResolveVanity maps a vanity name to a 64-bit steam id, "" when unknown
func (c *Client) ResolveVanity(ctx context.Context, vanity string) (string, error) {
	q := c.apiQuery()
	q.Set("vanityurl", vanity)
	var env vanityEnvelope
	err := c.getJSON(ctx, c.opts.APIBaseURL, "/ISteamUser/ResolveVanityURL/v1/", q, &env)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if env.Response.Success != 1 {
		return "", nil
	}
	return env.Response.SteamID, nil
}
