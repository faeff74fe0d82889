package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/ajurkovic/game-scheduler/internal/modules/guildconfig"

	"github.com/google/uuid"
)

// sendRequest issues a guild-scoped request and decodes the JSON
// response body, when there is one, into TResp.
func sendRequest[TReq any, TResp any](
	c *http.Client,
	url string,
	method string,
	guildID int64,
	req TReq,
) (*http.Response, TResp, error) {
	var resp TResp

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, resp, err
	}

	httpReq, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, resp, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(guildconfig.GuildIDHeader, strconv.FormatInt(guildID, 10))

	httpResp, err := c.Do(httpReq)
	if err != nil {
		return nil, resp, err
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	responsePayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp, resp, err
	}

	if len(responsePayload) > 0 {
		if err := json.Unmarshal(responsePayload, &resp); err != nil {
			return httpResp, resp, fmt.Errorf("failed to unmarshal %q: %w", responsePayload, err)
		}
	}

	return httpResp, resp, nil
}

// randomSnowflake generates a positive 63-bit id so tests never collide
// on guild, channel, or user ids.
func randomSnowflake() int64 {
	u := uuid.New()
	return int64(binary.BigEndian.Uint64(u[:8]) & math.MaxInt64)
}
