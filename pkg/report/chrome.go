package report

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeEngine prints the HTML layout to PDF with a headless Chrome.
type ChromeEngine struct {
	html *HTMLEngine

	// ExecPath overrides browser discovery.
	ExecPath string
	// NoSandbox is needed when running as root, e.g. in containers.
	NoSandbox bool
	// Timeout bounds one render. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// NewChromeEngine creates the PDF engine.
func NewChromeEngine() *ChromeEngine {
	return &ChromeEngine{
		html:    NewHTMLEngine(),
		Timeout: 30 * time.Second,
	}
}

func (e *ChromeEngine) Name() string      { return EnginePDF }
func (e *ChromeEngine) Ext() string       { return ".pdf" }
func (e *ChromeEngine) MediaType() string { return "application/pdf" }

// Render loads the HTML rendering into a blank tab and prints it.
// No file is written; the page content is set over the DevTools protocol.
func (e *ChromeEngine) Render(ctx context.Context, l Layout) ([]byte, error) {
	doc, err := e.html.Render(ctx, l)
	if err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)
	if e.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if e.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.ExecPath))
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(doc)).Do(ctx)
		}),
		chromedp.WaitReady("img", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}
	return pdf, nil
}

var _ Engine = (*ChromeEngine)(nil)
