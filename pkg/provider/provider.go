package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"f1telemetrycompare/pkg/model"
)

// Client fetches session metadata and fastest-lap telemetry from the timing
// API. Fastest-lap responses are cached on disk: session telemetry never
// changes once the session is over, so a cache hit skips the network entirely.
type Client struct {
	domain string
	cache  *Cache
}

func NewClient(domain string, cache *Cache) *Client {
	return &Client{
		domain: domain,
		cache:  cache,
	}
}

func (c *Client) GetSessionInfo(ctx context.Context, ref model.SessionRef) (model.SessionInfo, error) {
	var info model.SessionInfo
	reqURL := fmt.Sprintf("%s/v1/session?%s", c.domain, sessionQuery(ref).Encode())
	if err := c.getJSON(ctx, reqURL, &info); err != nil {
		return info, errors.Wrapf(err, "getting session info for %s", ref.ID())
	}
	return info, nil
}

func (c *Client) GetFastestLap(ctx context.Context, ref model.SessionRef, driver string) (model.LapRecord, error) {
	var record model.LapRecord

	key := fmt.Sprintf("%s_%s", ref.ID(), driver)
	if c.cache != nil {
		hit, err := c.cache.Get(key, &record)
		if err != nil {
			return record, err
		}
		if hit {
			return record, nil
		}
	}

	query := sessionQuery(ref)
	query.Set("driver", driver)
	reqURL := fmt.Sprintf("%s/v1/fastestlap?%s", c.domain, query.Encode())
	if err := c.getJSON(ctx, reqURL, &record); err != nil {
		return record, errors.Wrapf(err, "getting fastest lap for %s in %s", driver, ref.ID())
	}

	if c.cache != nil {
		if err := c.cache.Put(key, record); err != nil {
			return record, err
		}
	}
	return record, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("timing API returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func sessionQuery(ref model.SessionRef) url.Values {
	query := url.Values{}
	query.Set("year", fmt.Sprint(ref.Year))
	query.Set("race", ref.RaceName)
	query.Set("session", ref.SessionType)
	return query
}
