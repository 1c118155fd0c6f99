package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/qwitter/cli/pkg/api"
	"github.com/qwitter/cli/pkg/binder"
	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/dom"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/output"
	"github.com/qwitter/cli/pkg/platform"
	"github.com/qwitter/cli/pkg/theme"
	"github.com/qwitter/cli/pkg/toast"
)

// Page is a loaded page with its controls bound, the way a browser tab
// holds one after the page scripts ran.
type Page struct {
	Doc    *dom.Document
	Nav    *platform.PageNavigator
	Theme  *theme.Controller
	Toasts []*toast.Toast
	// Bound is the number of controls wired on the current page.
	Bound int

	dispatcher *api.Dispatcher
	binder     *binder.Binder
	notifier   *toast.Notifier
}

// PageOptions selects the capabilities a page runs with.
type PageOptions struct {
	Store   platform.Store
	Scheme  platform.SchemeSource
	Alerter platform.Alerter
}

func defaultPageOptions() PageOptions {
	return PageOptions{
		Store:   platform.NewDiskStore(config.GetString("theme.state_dir")),
		Scheme:  platform.NewTerminalScheme(),
		Alerter: platform.TerminalAlerter{},
	}
}

// OpenPage fetches path and runs the page setup on it.
func OpenPage(ctx context.Context, path string, opts PageOptions) (*Page, error) {
	d, _, err := newDispatcher()
	if err != nil {
		return nil, err
	}
	doc, err := d.FetchPage(ctx, path)
	if err != nil {
		return nil, err
	}

	p := &Page{
		dispatcher: d,
		Theme:      theme.New(opts.Store, opts.Scheme),
		notifier:   toast.FromConfig(),
	}
	p.Nav = platform.NewPageNavigator(doc.URL(), func(u *url.URL) error {
		next, err := d.FetchPage(ctx, u.RequestURI())
		if err != nil {
			return err
		}
		p.load(next)
		return nil
	})
	p.binder = binder.New(d, p.Nav, opts.Alerter)
	p.load(doc)
	return p, nil
}

func (p *Page) load(doc *dom.Document) {
	p.notifier.Stop()
	p.notifier = toast.NewNotifier(p.notifier.Delay, p.notifier.ShowAfter)

	p.Doc = doc
	if err := p.Theme.Initialize(doc); err != nil {
		logger.Warn("Theme setup failed", "error", err)
	}
	p.Toasts = p.notifier.Initialize(doc)
	p.Bound = p.binder.Attach(doc)
}

// Close stops timers and watchers owned by the page.
func (p *Page) Close() {
	p.notifier.Stop()
	p.Theme.Close()
}

// Click fires a click on the first element matching selector.
func (p *Page) Click(ctx context.Context, selector string) (*dom.Element, error) {
	var el *dom.Element
	p.Doc.Update(func() {
		el = p.Doc.Query(selector)
	})
	if el == nil {
		return nil, qerrors.ValidationError("selector", fmt.Sprintf("nothing matches %q", selector))
	}
	if err := p.binder.Click(ctx, el); err != nil {
		return el, &ReportedError{Err: err}
	}
	return el, nil
}

// Submit fills the form's textarea with text and submits it.
func (p *Page) Submit(ctx context.Context, selector, text string) (*dom.Element, error) {
	var form *dom.Element
	p.Doc.Update(func() {
		form = p.Doc.Query(selector)
		if form == nil {
			return
		}
		if ta := form.Query("textarea"); ta != nil {
			ta.SetValue(text)
		}
	})
	if form == nil {
		return nil, qerrors.ValidationError("selector", fmt.Sprintf("nothing matches %q", selector))
	}
	if _, err := p.binder.Submit(ctx, form); err != nil {
		return form, &ReportedError{Err: err}
	}
	return form, nil
}

// PostSummary is one post as rendered on a page.
type PostSummary struct {
	ID         string `json:"id"`
	Body       string `json:"body"`
	Likes      string `json:"likes"`
	Liked      bool   `json:"liked"`
	Bookmarked bool   `json:"bookmarked"`
}

// Summary describes a loaded page.
type Summary struct {
	URL    string        `json:"url"`
	Title  string        `json:"title"`
	Theme  string        `json:"theme"`
	Toasts []string      `json:"toasts"`
	Posts  []PostSummary `json:"posts"`
	Bound  int           `json:"bound_controls"`
}

// Summarize reads the parts of the page a terminal user cares about.
func (p *Page) Summarize() Summary {
	var s Summary
	p.Doc.Update(func() {
		s.URL = p.Doc.URL().String()
		if title := p.Doc.Query("title"); title != nil {
			s.Title = strings.TrimSpace(title.Text())
		}
		if body := p.Doc.Body(); body != nil {
			s.Theme, _ = body.Attr(theme.Attribute)
		}
		for _, el := range p.Doc.QueryAll(toast.Selector) {
			if tb := el.Query(".toast-body"); tb != nil {
				s.Toasts = append(s.Toasts, strings.TrimSpace(tb.Text()))
			} else {
				s.Toasts = append(s.Toasts, strings.TrimSpace(el.Text()))
			}
		}
		for _, post := range p.Doc.QueryAll("div.post") {
			s.Posts = append(s.Posts, summarizePost(post))
		}
	})
	s.Bound = p.Bound
	return s
}

func summarizePost(post *dom.Element) PostSummary {
	ps := PostSummary{ID: post.Data("postid")}
	if body := post.Query(".editable-post-body"); body != nil {
		ps.Body = body.Text()
	} else if content := post.Query(".post-content"); content != nil {
		ps.Body = content.Text()
	}
	if like := post.Query("button.like"); like != nil {
		if count := like.Query("span"); count != nil {
			ps.Likes = strings.TrimSpace(count.Text())
		}
		if icon := like.Query("i"); icon != nil {
			ps.Liked = icon.HasClass("fas")
		}
	}
	if icon := post.Query("button.bookmark i"); icon != nil {
		ps.Bookmarked = icon.HasClass("fas")
	}
	return ps
}

// PageService backs the page commands.
type PageService struct {
	opts func() PageOptions
}

// NewPageService creates a page service using the terminal capabilities.
func NewPageService() *PageService {
	return &PageService{opts: defaultPageOptions}
}

// Show loads path and prints its summary.
func (s *PageService) Show(ctx context.Context, path string) error {
	p, err := OpenPage(ctx, path, s.opts())
	if err != nil {
		return err
	}
	defer p.Close()
	return printSummary(p.Summarize())
}

// Click loads path, clicks selector and prints the outcome.
func (s *PageService) Click(ctx context.Context, path, selector string) error {
	p, err := OpenPage(ctx, path, s.opts())
	if err != nil {
		return err
	}
	defer p.Close()

	start := len(p.Nav.History())
	el, err := p.Click(ctx, selector)
	if err != nil {
		return err
	}
	return printOutcome(p, el, start)
}

// Submit loads path, submits the form at selector with text and prints the outcome.
func (s *PageService) Submit(ctx context.Context, path, selector, text string) error {
	p, err := OpenPage(ctx, path, s.opts())
	if err != nil {
		return err
	}
	defer p.Close()

	start := len(p.Nav.History())
	form, err := p.Submit(ctx, selector, text)
	if err != nil {
		return err
	}
	p.Doc.Update(func() {
		if post := form.Closest(".post"); post != nil {
			form = post
		}
	})
	return printOutcome(p, form, start)
}

func printOutcome(p *Page, el *dom.Element, historyBefore int) error {
	if len(p.Nav.History()) > historyBefore {
		output.PrintSuccess("Now at %s", p.Nav.Location().String())
		return printSummary(p.Summarize())
	}
	var markup string
	p.Doc.Update(func() {
		markup = el.OuterHTML()
	})
	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", map[string]string{"element": markup})
	}
	output.PrintSuccess("Done")
	output.PrintInfo("%s", markup)
	return nil
}

func printSummary(s Summary) error {
	switch output.GetOutputFormat() {
	case output.FormatJSON:
		return output.Print("", s)
	default:
		if err := output.PrintRecord(s.Title, map[string]interface{}{
			"url":            s.URL,
			"theme":          s.Theme,
			"bound controls": s.Bound,
		}); err != nil {
			return err
		}
		for _, t := range s.Toasts {
			output.PrintInfo("%s", t)
		}
		if len(s.Posts) == 0 {
			return nil
		}
		rows := make([][]string, 0, len(s.Posts))
		for _, ps := range s.Posts {
			rows = append(rows, []string{ps.ID, truncate(ps.Body, 60), ps.Likes, yesNo(ps.Liked), yesNo(ps.Bookmarked)})
		}
		return output.PrintList([]string{"ID", "Body", "Likes", "Liked", "Bookmarked"}, rows)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// ShowProfile loads the profile page of username.
func (s *PageService) ShowProfile(ctx context.Context, username string) error {
	routes, err := api.RoutesFor(config.GetString("api.routes"))
	if err != nil {
		return err
	}
	return s.Show(ctx, routes.ProfilePagePath(username))
}
