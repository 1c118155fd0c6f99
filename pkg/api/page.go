package api

import (
	"bytes"
	"context"
	"fmt"

	"github.com/qwitter/cli/pkg/dom"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
)

// FetchPage loads a server-rendered page into the document model. The
// document records the URL the request finally landed on, so a page behind
// login_required comes back as the login page.
func (d *Dispatcher) FetchPage(ctx context.Context, path string) (*dom.Document, error) {
	logger.Debug("Fetching page", "path", path)

	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(path)
	if err != nil {
		return nil, qerrors.Transport("could not load "+path, err)
	}
	if resp.IsError() {
		return nil, qerrors.Rejected(fmt.Sprint(resp.StatusCode()), fmt.Sprintf("%s returned %s", path, resp.Status()))
	}

	pageURL := resp.RawResponse.Request.URL
	doc, err := dom.Parse(bytes.NewReader(resp.Body()), pageURL)
	if err != nil {
		return nil, qerrors.Transport("could not parse "+path, err)
	}
	if d.redirectedToLogin(resp) {
		logger.Debug("Page requires login", "path", path, "landed", pageURL.String())
	}
	return doc, nil
}
