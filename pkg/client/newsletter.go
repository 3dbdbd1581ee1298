package client

import (
	"context"
	"net/http"
)

// Subscribe signs email up for the newsletter. The server mails the
// confirmation after replying.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doRequest(ctx, http.MethodPost, APIPrefix+"/subscribe", body, nil)
}
